package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 文章，评论内嵌在文档中
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Slug          string             `bson:"slug"` // 创建时由标题生成，之后不再变化
	Content       string             `bson:"content"`
	Excerpt       string             `bson:"excerpt"`
	AuthorID      uint64             `bson:"author_id"`
	CategoryID    primitive.ObjectID `bson:"category_id"`
	Tags          []string           `bson:"tags"`
	FeaturedImage string             `bson:"featured_image"`
	IsPublished   bool               `bson:"is_published"`
	ViewCount     int64              `bson:"view_count"`
	Comments      []Comment          `bson:"comments"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// OwnerID 文章归属于作者
func (p *Post) OwnerID() uint64 {
	return p.AuthorID
}

// PostPatch 部分更新，nil 字段保持不变
type PostPatch struct {
	Title         *string
	Content       *string
	Excerpt       *string
	CategoryID    *primitive.ObjectID
	Tags          *[]string
	FeaturedImage *string
	IsPublished   *bool
}

// PostFilter 列表查询条件
type PostFilter struct {
	CategoryID    *primitive.ObjectID
	PublishedOnly bool
}
