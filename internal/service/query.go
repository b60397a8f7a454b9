package service

import (
	"strconv"
	"strings"
)

const maxPageSize = 100

// PostOptions 列表与搜索的默认参数
type PostOptions struct {
	DefaultPageSize int
	SearchLimit     int
	DefaultImage    string
}

func DefaultPostOptions() PostOptions {
	return PostOptions{
		DefaultPageSize: 10,
		SearchLimit:     20,
		DefaultImage:    "default-post.jpg",
	}
}

// pageWindow 规范化后的分页窗口
type pageWindow struct {
	Page int
	Size int
}

func (w pageWindow) Offset() int64 {
	return int64(w.Page-1) * int64(w.Size)
}

// newPageWindow 缺省或非法的 page/size 分别回退到 1 和 defaultSize
func newPageWindow(page, size string, defaultSize int) pageWindow {
	w := pageWindow{
		Page: parsePositive(page, 1),
		Size: parsePositive(size, defaultSize),
	}
	if w.Size > maxPageSize {
		w.Size = maxPageSize
	}
	return w
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// totalPages ceil(total / size)
func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
