package util

import (
	"Inkwell/internal/pkg/consts"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrNotImage = errors.New("file is not an image")

// DetectImage 按文件头识别图片类型，返回 MIME 与扩展名，并把 reader 复位到开头
func DetectImage(reader io.ReadSeeker) (contentType, ext string, err error) {
	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(mtype.String(), consts.MimePrefixImage) {
		return "", "", ErrNotImage
	}
	return mtype.String(), mtype.Extension(), nil
}

// FeaturedImageKey 配图对象名：posts/yyyy/mm/dd/<uuid><ext>
func FeaturedImageKey(now time.Time, ext string) string {
	return "posts/" + now.Format("2006/01/02/") + uuid.NewString() + ext
}
