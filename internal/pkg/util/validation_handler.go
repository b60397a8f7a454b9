package util

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 汇总所有字段错误，不在第一个错误处停止
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError 构造单字段的校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Normalizer 校验前整理字段，例如去掉首尾空白
type Normalizer interface {
	Normalize()
}

// ValidateDTO 先整理再校验 DTO，返回 *ValidationError
func ValidateDTO(dto any) error {
	if n, ok := dto.(Normalizer); ok {
		n.Normalize()
	}
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return FromValidationErrors(vErrs)
		}
		return err
	}
	return nil
}

// FromValidationErrors 把 validator 的错误列表转换为字段消息
func FromValidationErrors(vErrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(vErrs))}
	for _, fe := range vErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "min":
		if fe.Param() == "1" {
			return fmt.Sprintf("%s cannot be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "hexadecimal", "len":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// displayName featuredImage -> FeaturedImage
func displayName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// DecodeJSON 只解码请求体，空请求体视为空对象，校验交给调用方
func DecodeJSON(body io.Reader, dto any) error {
	if err := json.NewDecoder(body).Decode(dto); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// BindJSON 解码请求体并校验
func BindJSON(body io.Reader, dto any) error {
	if err := DecodeJSON(body, dto); err != nil {
		return err
	}
	return ValidateDTO(dto)
}

// TrimPtr 去掉指针所指字符串的首尾空白，nil 不处理
func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
