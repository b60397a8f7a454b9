package service

import (
	"Inkwell/internal/pkg/util"
	"errors"
)

// Kind 错误类别，路由层据此映射状态码
type Kind string

const (
	KindNotFound        Kind = "NotFound"
	KindValidation      Kind = "ValidationFailed"
	KindDuplicateKey    Kind = "DuplicateKey"
	KindForbidden       Kind = "Forbidden"
	KindInvalidArgument Kind = "InvalidArgument"
	KindUnauthorized    Kind = "Unauthorized"
	KindStorage         Kind = "StorageError"
)

var (
	ErrParamInvalid      = errors.New("Invalid parameters")
	ErrPostNotFound      = errors.New("Post not found")
	ErrCategoryNotFound  = errors.New("Category not found")
	ErrUserNotFound      = errors.New("User not found")
	ErrPostTitleExist    = errors.New("A post with this title already exists")
	ErrCategoryExist     = errors.New("Category already exists")
	ErrUserExist         = errors.New("User already exists")
	ErrForbidden         = errors.New("Not authorized to perform this action")
	ErrSearchQueryEmpty  = errors.New("Search query is required")
	ErrUnauthorized      = errors.New("Not authorized, no token")
	ErrPasswordIncorrect = errors.New("Invalid credentials")
	ErrFileNotSupported  = errors.New("Only image files are allowed")
	UnExpectedError      = errors.New("Server error")
)

var ErrorMap = map[error]Kind{
	ErrParamInvalid:      KindInvalidArgument,
	ErrPostNotFound:      KindNotFound,
	ErrCategoryNotFound:  KindNotFound,
	ErrUserNotFound:      KindNotFound,
	ErrPostTitleExist:    KindDuplicateKey,
	ErrCategoryExist:     KindDuplicateKey,
	ErrUserExist:         KindDuplicateKey,
	ErrForbidden:         KindForbidden,
	ErrSearchQueryEmpty:  KindInvalidArgument,
	ErrUnauthorized:      KindUnauthorized,
	ErrPasswordIncorrect: KindUnauthorized,
	ErrFileNotSupported:  KindInvalidArgument,
	UnExpectedError:      KindStorage,
}

// KindOf 对错误分类，未登记的错误一律视为 StorageError
func KindOf(err error) Kind {
	var ve *util.ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	for sentinel, kind := range ErrorMap {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindStorage
}
