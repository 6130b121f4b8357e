package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/search/model"
	"blog-backend/internal/domains/search/service"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
)

type SearchHandler struct {
	service service.ServiceInterface
}

func NewSearchHandler(service service.ServiceInterface) *SearchHandler {
	return &SearchHandler{service: service}
}

// SearchPosts xử lý GET /search/posts?q=&tags=&author_id=&sort_by=&page=&page_size=
func (h *SearchHandler) SearchPosts(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := pagination.Parse(c.Query("page"), c.Query("page_size"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := h.service.SearchPosts(c.Request.Context(), req, page)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// PopularTags xử lý GET /search/tags/popular?limit=
func (h *SearchHandler) PopularTags(c *gin.Context) {
	var req model.PopularTagsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	tags, err := h.service.PopularTags(c.Request.Context(), req.Value())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}
