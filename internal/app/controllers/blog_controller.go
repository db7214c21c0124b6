package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// BlogController handles blog posts, comments and likes
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{
		blogService: blogService,
	}
}

// ListPosts returns a page of posts
// @Summary List blog posts
// @Tags blog
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} models.BlogPost
// @Router /blog [get]
func (c *BlogController) ListPosts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	posts, err := c.blogService.ListPosts(ctx, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns one post by slug
// @Summary Get a blog post
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug} [get]
func (c *BlogController) GetPost(ctx *gin.Context) {
	post, err := c.blogService.GetPost(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// CreatePost publishes a new post
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} models.BlogPost
// @Failure 409 {object} dto.ErrorResponse
// @Router /blog [post]
func (c *BlogController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	post, err := c.blogService.CreatePost(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, post)
}

// UpdatePost edits a post
// @Summary Update a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Param request body dto.UpdatePostRequest true "Changes"
// @Success 200 {object} models.BlogPost
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug} [put]
func (c *BlogController) UpdatePost(ctx *gin.Context) {
	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	post, err := c.blogService.UpdatePost(ctx, ctx.Param("slug"), userID, middleware.IsAdminFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// DeletePost removes a post
// @Summary Delete a blog post
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug} [delete]
func (c *BlogController) DeletePost(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	if err := c.blogService.DeletePost(ctx, ctx.Param("slug"), userID, middleware.IsAdminFromContext(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewOKResponse("post deleted"))
}

// ToggleLike flips the caller's like on a post
// @Summary Like or unlike a blog post
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug}/like [post]
func (c *BlogController) ToggleLike(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	response, err := c.blogService.ToggleLike(ctx, ctx.Param("slug"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListComments returns a post's comments
// @Summary List comments on a blog post
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {array} models.Comment
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug}/comments [get]
func (c *BlogController) ListComments(ctx *gin.Context) {
	comments, err := c.blogService.ListComments(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

// AddComment attaches a comment to a post
// @Summary Comment on a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug}/comments [post]
func (c *BlogController) AddComment(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	comment, err := c.blogService.AddComment(ctx, ctx.Param("slug"), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}
