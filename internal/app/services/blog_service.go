package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/repositories"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BlogService handles blog posts, comments and likes
type BlogService struct {
	blogRepo *repositories.BlogRepository
}

// NewBlogService creates a new blog service instance
func NewBlogService(blogRepo *repositories.BlogRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
	}
}

// CreatePost publishes a new post. Admin only, enforced at the route level.
func (s *BlogService) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.BlogPost, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, apperrors.NewValidationError("slug must be lowercase words separated by hyphens")
	}

	post := &models.BlogPost{
		Slug:     slug,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.blogRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPost returns one post by slug
func (s *BlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.blogRepo.GetPostBySlug(ctx, slug)
}

// ListPosts returns a page of posts, newest first
func (s *BlogService) ListPosts(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.blogRepo.ListPosts(ctx, limit, offset)
}

// UpdatePost edits a post. Only the author or an admin may edit.
func (s *BlogService) UpdatePost(ctx context.Context, slug string, userID int64, isAdmin bool, req *dto.UpdatePostRequest) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != "" {
		post.Title = strings.TrimSpace(req.Title)
	}
	if req.Content != "" {
		post.Content = req.Content
	}

	if err := s.blogRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *BlogService) DeletePost(ctx context.Context, slug string, userID int64, isAdmin bool) error {
	post, err := s.blogRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if post.AuthorID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.blogRepo.DeletePost(ctx, post.ID)
}

// ToggleLike flips the caller's like on a post
func (s *BlogService) ToggleLike(ctx context.Context, slug string, userID int64) (*dto.LikeResponse, error) {
	post, err := s.blogRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	liked, count, err := s.blogRepo.ToggleLike(ctx, post.ID, userID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

// AddComment attaches a comment to a post
func (s *BlogService) AddComment(ctx context.Context, slug string, userID int64, req *dto.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.blogRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment cannot be empty")
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.blogRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns a post's comments oldest first
func (s *BlogService) ListComments(ctx context.Context, slug string) ([]*models.Comment, error) {
	post, err := s.blogRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return s.blogRepo.ListComments(ctx, post.ID)
}
