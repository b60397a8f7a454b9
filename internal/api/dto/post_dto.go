package dto

import (
	"strings"
	"time"

	"Inkwell/internal/pkg/util"
)

// PostCreateDTO 创建文章
type PostCreateDTO struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt" validate:"max=200"`
	Category      string   `json:"category" validate:"required"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	IsPublished   bool     `json:"isPublished"`
}

// PostUpdateDTO 部分更新，未出现的字段为 nil，不做修改
type PostUpdateDTO struct {
	Title         *string   `json:"title" validate:"omitnil,min=1,max=100"`
	Content       *string   `json:"content" validate:"omitnil,min=1"`
	Excerpt       *string   `json:"excerpt" validate:"omitnil,max=200"`
	Category      *string   `json:"category" validate:"omitnil,min=1"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
	IsPublished   *bool     `json:"isPublished"`
}

func (d *PostCreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	d.Excerpt = strings.TrimSpace(d.Excerpt)
	d.Category = strings.TrimSpace(d.Category)
	d.FeaturedImage = strings.TrimSpace(d.FeaturedImage)
}

func (d *PostUpdateDTO) Normalize() {
	util.TrimPtr(d.Title)
	util.TrimPtr(d.Content)
	util.TrimPtr(d.Excerpt)
	util.TrimPtr(d.Category)
	util.TrimPtr(d.FeaturedImage)
}

// PostListQuery 列表参数，非数字的 page/limit 使用默认值
type PostListQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Category string `form:"category"`
}

type CommentCreateDTO struct {
	Content string `json:"content" validate:"required,max=500"`
}

type PostDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Excerpt       string            `json:"excerpt"`
	Author        *UserBriefDTO     `json:"author"`
	Category      *CategoryBriefDTO `json:"category"`
	Tags          []string          `json:"tags"`
	FeaturedImage string            `json:"featuredImage"`
	IsPublished   bool              `json:"isPublished"`
	ViewCount     int64             `json:"viewCount"`
	Comments      []*CommentDTO     `json:"comments"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type CommentDTO struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	User      *UserBriefDTO `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PostPageDTO struct {
	Posts      []*PostDTO `json:"posts"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}
