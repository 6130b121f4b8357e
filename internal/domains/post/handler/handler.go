package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
)

type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(service service.ServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// ========================================
// AUTHOR ENDPOINTS
// ========================================

// CreatePost xử lý POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/posts/"+post.ID.String())
	response.Success(c, http.StatusCreated, post)
}

// UpdatePost xử lý PATCH /posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), postID, userID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}

// DeletePost xử lý DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), postID, userID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.NoContent(c)
}

// ListMyPosts xử lý GET /me/posts
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, page, ok := listParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListMyPosts(c.Request.Context(), userID, req, page)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetMyPost xử lý GET /me/posts/:id, 403 nếu post không phải của user
func (h *PostHandler) GetMyPost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), postID, &userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// GetPost xử lý GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), postID, nil)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}

// ListPosts xử lý GET /posts?status=&author_id=&tags=&page=&page_size=
func (h *PostHandler) ListPosts(c *gin.Context) {
	req, page, ok := listParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListPosts(c.Request.Context(), req, page)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListPostsByTag xử lý GET /tags/:id/posts
func (h *PostHandler) ListPostsByTag(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := pagination.Parse(c.Query("page"), c.Query("page_size"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := h.service.ListPostsByTag(c.Request.Context(), tagID, page)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ========================================
// HELPERS
// ========================================

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func listParams(c *gin.Context) (model.ListPostsRequest, pagination.Params, bool) {
	var req model.ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return req, pagination.Params{}, false
	}

	page, err := pagination.Parse(c.Query("page"), c.Query("page_size"))
	if err != nil {
		response.HandleError(c, err)
		return req, pagination.Params{}, false
	}
	return req, page, true
}
