package dto

// CreatePostRequest is the request body for creating a blog post
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest is the request body for updating a blog post. Empty
// fields are left unchanged.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateCommentRequest is the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// LikeResponse reports the like toggle outcome
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
