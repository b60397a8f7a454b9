package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 内嵌在文章文档中，没有独立的存取接口
type Comment struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    uint64             `bson:"user_id"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`
}
