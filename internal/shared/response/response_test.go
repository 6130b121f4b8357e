package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleError(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/posts/1", nil)

	HandleError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleError_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: apperror.Validation("PST010", "Validation failed"), wantStatus: http.StatusBadRequest, wantCode: "PST010"},
		{name: "not found wrapped", err: fmt.Errorf("get: %w", apperror.NotFound("PST001", "Post not found")), wantStatus: http.StatusNotFound, wantCode: "PST001"},
		{name: "forbidden", err: apperror.Forbidden("PST002", "nope"), wantStatus: http.StatusForbidden, wantCode: "PST002"},
		{name: "conflict", err: apperror.Conflict("USR002", "dup"), wantStatus: http.StatusConflict, wantCode: "USR002"},
		{name: "unauthorized", err: apperror.Unauthorized("AUTH001", "bad"), wantStatus: http.StatusUnauthorized, wantCode: "AUTH001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := runHandleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	err := apperror.Validation("TAG002", "Maximum 10 tags allowed per post").WithField("tags", "got 11 tags")

	w, body := runHandleError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "got 11 tags", details["tags"])
}

func TestHandleError_HidesInternalErrors(t *testing.T) {
	w, body := runHandleError(t, errors.New(`pq: relation "posts" does not exist`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestHandleError_InternalKindIsHidden(t *testing.T) {
	err := apperror.Wrap(apperror.KindInternal, "SYS999", "storage exploded", errors.New("disk full"))

	w, body := runHandleError(t, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"abc"}}`, w.Body.String())
}
