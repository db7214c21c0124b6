package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/db"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/dberrors"
)

// BlogRepository handles database operations for blog posts, comments and
// likes
type BlogRepository struct {
	db *db.PostgresDB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(database *db.PostgresDB) *BlogRepository {
	return &BlogRepository{
		db: database,
	}
}

// CreatePost creates a new blog post
func (r *BlogRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (slug, title, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, like_count, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		post.Slug,
		post.Title,
		post.Content,
		post.AuthorID,
	).Scan(&post.ID, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a post with this slug already exists")
		}
		return fmt.Errorf("error creating blog post: %w", err)
	}

	return nil
}

// GetPostBySlug retrieves a post with its author attached
func (r *BlogRepository) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `
		SELECT p.id, p.slug, p.title, p.content, p.author_id, p.like_count, p.created_at, p.updated_at,
		       u.id, u.email, u.first_name, u.last_name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1
	`

	var post models.BlogPost
	var author models.User
	err := r.db.Pool.QueryRow(ctx, query, slug).Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.LikeCount,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.ID,
		&author.Email,
		&author.FirstName,
		&author.LastName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving blog post: %w", err)
	}

	post.Author = &author
	return &post, nil
}

// ListPosts retrieves posts newest first
func (r *BlogRepository) ListPosts(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	query := `
		SELECT p.id, p.slug, p.title, p.content, p.author_id, p.like_count, p.created_at, p.updated_at,
		       u.id, u.email, u.first_name, u.last_name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		var author models.User
		if err := rows.Scan(
			&post.ID,
			&post.Slug,
			&post.Title,
			&post.Content,
			&post.AuthorID,
			&post.LikeCount,
			&post.CreatedAt,
			&post.UpdatedAt,
			&author.ID,
			&author.Email,
			&author.FirstName,
			&author.LastName,
		); err != nil {
			return nil, err
		}
		post.Author = &author
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// UpdatePost updates a post's title and content
func (r *BlogRepository) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE blog_posts SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`,
		post.Title, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("error updating blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// DeletePost removes a post together with its comments and likes
func (r *BlogRepository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// ToggleLike adds the user's like when absent and removes it when present,
// keeping the post's cached like_count in step. Returns whether the post is
// liked after the call and the new count.
func (r *BlogRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, int, error) {
	var liked bool
	var count int
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
			postID, userID)
		if err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}

		delta := -1
		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
				postID, userID)
			if err != nil {
				return fmt.Errorf("error adding like: %w", err)
			}
			liked = true
			delta = 1
		}

		err = tx.QueryRow(ctx,
			`UPDATE blog_posts SET like_count = like_count + $1 WHERE id = $2 RETURNING like_count`,
			delta, postID).Scan(&count)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("error updating like count: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

// CreateComment adds a comment to a post
func (r *BlogRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// ListComments retrieves a post's comments oldest first, authors attached
func (r *BlogRepository) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.id, u.email, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.User
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&author.ID,
			&author.Email,
			&author.FirstName,
			&author.LastName,
		); err != nil {
			return nil, err
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
