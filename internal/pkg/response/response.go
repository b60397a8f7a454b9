package response

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	Conflict            = http.StatusConflict
	InternalServerError = http.StatusInternalServerError
)

var kindStatus = map[service.Kind]int{
	service.KindNotFound:        NotFound,
	service.KindValidation:      BadRequest,
	service.KindDuplicateKey:    Conflict,
	service.KindForbidden:       Forbidden,
	service.KindInvalidArgument: BadRequest,
	service.KindUnauthorized:    Unauthorized,
	service.KindStorage:         InternalServerError,
}

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, kind service.Kind, message string, data interface{}) {
	code := kindStatus[kind]
	c.JSON(code, dto.Response{
		Code:    code,
		Kind:    string(kind),
		Message: message,
		Data:    data,
	})
}

// Error 处理错误，存储层错误只记录日志，不向调用方暴露细节
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		err = util.FromValidationErrors(ve)
	}

	var fieldErr *util.ValidationError
	if errors.As(err, &fieldErr) {
		Fail(c, service.KindValidation, "Validation failed", fieldErr.Fields)
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &syntaxError) {
		Fail(c, service.KindInvalidArgument, "Malformed JSON body", nil)
		return
	}

	kind := service.KindOf(err)
	if kind == service.KindStorage {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, kind, service.UnExpectedError.Error(), nil)
		return
	}
	Fail(c, kind, err.Error(), nil)
}
