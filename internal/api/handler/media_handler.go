package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// MediaTracker 记录新上传的配图，超时未被引用的由清理任务删除
type MediaTracker interface {
	Track(ctx context.Context, fileKey string, meta *dto.MediaTempMetadata) error
}

type MediaHandler struct {
	tracker MediaTracker
}

func NewMediaHandler(tracker MediaTracker) *MediaHandler {
	return &MediaHandler{
		tracker: tracker,
	}
}

// Upload 上传文章配图，只接受图片
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	// 扩展名取自文件内容，不信任客户端文件名
	contentType, ext, err := util.DetectImage(reader)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := util.FeaturedImageKey(time.Now(), ext)

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	if s.tracker != nil {
		meta := &dto.MediaTempMetadata{
			MimeType:   contentType,
			UploaderID: c.GetUint64(consts.ContextUserID),
			CreatedAt:  time.Now().Unix(),
		}
		if err = s.tracker.Track(c.Request.Context(), fileKey, meta); err != nil {
			log.WarnContext(c.Request.Context(), "failed to track uploaded media", "fileKey", fileKey, "err", err)
		}
	}

	response.Success(c, &dto.MediaUploadDTO{
		FilePath: fileKey,
		URL:      minio.GetPublicURL(fileKey),
	})
}
