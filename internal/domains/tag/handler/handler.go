package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/domains/tag/service"
	"blog-backend/internal/shared/response"
)

type TagHandler struct {
	service service.ServiceInterface
}

func NewTagHandler(service service.ServiceInterface) *TagHandler {
	return &TagHandler{service: service}
}

// ListTags xử lý GET /tags?include_count=true
func (h *TagHandler) ListTags(c *gin.Context) {
	var req model.ListTagsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	tags, err := h.service.ListTags(c.Request.Context(), req.WithCount())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}
