package response

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(err error) (*httptest.ResponseRecorder, dto.Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)

	var body dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorMapsKindsToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   service.Kind
	}{
		{service.ErrPostNotFound, http.StatusNotFound, service.KindNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrForbidden), http.StatusForbidden, service.KindForbidden},
		{service.ErrPostTitleExist, http.StatusConflict, service.KindDuplicateKey},
		{service.ErrSearchQueryEmpty, http.StatusBadRequest, service.KindInvalidArgument},
		{service.ErrUnauthorized, http.StatusUnauthorized, service.KindUnauthorized},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			w, body := run(tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, string(tc.kind), body.Kind)
			assert.Equal(t, tc.err.Error(), body.Message)
		})
	}
}

func TestErrorHidesStorageDetails(t *testing.T) {
	w, body := run(errors.New("connection refused to 10.0.0.5:27017"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "StorageError", body.Kind)
	assert.Equal(t, "Server error", body.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestErrorValidationCarriesFields(t *testing.T) {
	ve := &util.ValidationError{Fields: []util.FieldError{
		{Field: "title", Message: "Title is required"},
		{Field: "content", Message: "Content is required"},
	}}
	w, _ := run(ve)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Title is required"))
	assert.True(t, strings.Contains(w.Body.String(), "Content is required"))
	assert.Contains(t, w.Body.String(), `"kind":"ValidationFailed"`)
}
