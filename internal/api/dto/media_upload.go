package dto

type MediaUploadDTO struct {
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
}

// MediaTempMetadata 已上传但尚未被文章引用的配图
type MediaTempMetadata struct {
	MimeType   string `json:"mime_type"`
	UploaderID uint64 `json:"uploader_id"`
	CreatedAt  int64  `json:"created_at"`
}
