package apperror

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "SYS001", "query failed", cause)

	assert.Equal(t, "query failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestError_IsComparesCode(t *testing.T) {
	notFound := NotFound("PST001", "Post not found")
	wrapped := fmt.Errorf("get post: %w", NotFound("PST001", "other message"))

	assert.ErrorIs(t, wrapped, notFound)
	assert.NotErrorIs(t, wrapped, NotFound("TAG001", "Tag not found"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("x: %w", Forbidden("PST002", "no"))))
	assert.Equal(t, KindConflict, KindOf(Conflict("USR002", "dup")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestFromValidation(t *testing.T) {
	type req struct {
		Title string
		Body  string
	}
	r := req{}
	verr := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Body, validation.Required),
	)
	require.Error(t, verr)

	err := FromValidation("PST010", verr)

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "PST010", appErr.Code)
	assert.Contains(t, appErr.Fields, "Title")
	assert.Contains(t, appErr.Fields, "Body")
}

func TestFromValidation_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("plain")
	assert.Same(t, plain, FromValidation("X", plain))
	assert.NoError(t, FromValidation("X", nil))
}
