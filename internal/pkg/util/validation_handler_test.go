package util

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Title   string `json:"title" validate:"required,max=5"`
	Content string `json:"content" validate:"required"`
}

func TestBindJSONAggregatesFieldErrors(t *testing.T) {
	var dto sampleDTO
	err := BindJSON(strings.NewReader(`{"title":"too long title"}`), &dto)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, FieldError{Field: "title", Message: "Title cannot exceed 5 characters"}, ve.Fields[0])
	assert.Equal(t, FieldError{Field: "content", Message: "Content is required"}, ve.Fields[1])
}

func TestBindJSONEmptyBody(t *testing.T) {
	var dto sampleDTO
	err := BindJSON(strings.NewReader(""), &dto)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestBindJSONMalformed(t *testing.T) {
	var dto sampleDTO
	err := BindJSON(strings.NewReader(`{"title": 3}`), &dto)
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestBindJSONValid(t *testing.T) {
	var dto sampleDTO
	require.NoError(t, BindJSON(strings.NewReader(`{"title":"hi","content":"body"}`), &dto))
	assert.Equal(t, "hi", dto.Title)
}

type trimmedDTO struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=5"`
	Body string  `json:"body" validate:"required"`
}

func (d *trimmedDTO) Normalize() {
	TrimPtr(d.Name)
	d.Body = strings.TrimSpace(d.Body)
}

func TestValidateDTOTrimsBeforeChecking(t *testing.T) {
	var dto trimmedDTO
	err := BindJSON(strings.NewReader(`{"name":"   ","body":"  \n "}`), &dto)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "Name cannot be empty", ve.Fields[0].Message)
	assert.Equal(t, "Body is required", ve.Fields[1].Message)

	dto = trimmedDTO{}
	require.NoError(t, BindJSON(strings.NewReader(`{"name":"  abcde  ","body":" x "}`), &dto))
	assert.Equal(t, "abcde", *dto.Name)
	assert.Equal(t, "x", dto.Body)
}

func TestDecodeJSONSkipsValidation(t *testing.T) {
	var dto sampleDTO
	require.NoError(t, DecodeJSON(strings.NewReader(`{"title":"too long title"}`), &dto))
	assert.Equal(t, "too long title", dto.Title)

	require.NoError(t, DecodeJSON(strings.NewReader(""), &dto))
	assert.Error(t, DecodeJSON(strings.NewReader(`{"title": 3}`), &dto))
}
