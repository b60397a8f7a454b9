package mongo

import (
	"Inkwell/internal/model"
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepo 文章存储。按 ID/slug 查询未命中时返回 nil, nil
type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPosts(ctx context.Context, filter model.PostFilter, offset, limit int64) ([]*model.Post, error)
	CountPosts(ctx context.Context, filter model.PostFilter) (int64, error)
	SearchPosts(ctx context.Context, query string, limit int64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id string, patch *model.PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
	AppendComment(ctx context.Context, id string, comment *model.Comment) (*model.Post, error)
	IncrementViewCount(ctx context.Context, id string) (*model.Post, error)
	GetReferencedCategoryIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// EnsurePostIndexes title、slug 唯一，列表按 is_published + created_at 查询
func EnsurePostIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_published", Value: 1}, {Key: "category_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return errors.Wrap(err, "create post indexes")
}

func (s *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return wrapWriteErr(err, "insert post")
	}
	return nil
}

func (s *postRepoImpl) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *postRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *postRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	post := &model.Post{}
	err := s.col.FindOne(ctx, filter).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find post")
	}
	return post, nil
}

// ListPosts 按创建时间倒序分页，_id 作为次级排序键保证翻页稳定
func (s *postRepoImpl) ListPosts(ctx context.Context, filter model.PostFilter, offset, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return s.find(ctx, buildFilter(filter), opts)
}

func (s *postRepoImpl) CountPosts(ctx context.Context, filter model.PostFilter) (int64, error) {
	total, err := s.col.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, errors.Wrap(err, "count posts")
	}
	return total, nil
}

// SearchPosts 标题或正文包含关键词（不区分大小写）
func (s *postRepoImpl) SearchPosts(ctx context.Context, query string, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, searchFilter(query), opts)
}

func (s *postRepoImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.Post, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	return list, nil
}

// UpdatePost 只 $set 出现在 patch 里的字段，不覆盖并发写入的评论和浏览量
func (s *postRepoImpl) UpdatePost(ctx context.Context, id string, patch *model.PostPatch) (*model.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return s.findOneAndUpdate(ctx, oid, patchUpdate(patch, time.Now()), "update post")
}

func (s *postRepoImpl) DeletePost(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrap(err, "delete post")
	}
	return result.DeletedCount > 0, nil
}

// AppendComment $push 追加评论，不依赖先读后写
func (s *postRepoImpl) AppendComment(ctx context.Context, id string, comment *model.Comment) (*model.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return s.findOneAndUpdate(ctx, oid, commentUpdate(comment, time.Now()), "append comment")
}

// IncrementViewCount $inc 原子自增，返回自增后的文档
func (s *postRepoImpl) IncrementViewCount(ctx context.Context, id string) (*model.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return s.findOneAndUpdate(ctx, oid, viewUpdate(), "increment view count")
}

func (s *postRepoImpl) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M, msg string) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	post := &model.Post{}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapWriteErr(err, msg)
	}
	return post, nil
}

// GetReferencedCategoryIDs 所有文章引用过的分类 ID
func (s *postRepoImpl) GetReferencedCategoryIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	values, err := s.col.Distinct(ctx, "category_id", bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "distinct category ids")
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if oid, ok := v.(primitive.ObjectID); ok && !oid.IsZero() {
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func buildFilter(filter model.PostFilter) bson.M {
	query := bson.M{}
	if filter.PublishedOnly {
		query["is_published"] = true
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	return query
}

// searchFilter 关键词按字面量匹配，正则元字符全部转义
func searchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"is_published": true,
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		},
	}
}

func patchUpdate(patch *model.PostPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Excerpt != nil {
		set["excerpt"] = *patch.Excerpt
	}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.FeaturedImage != nil {
		set["featured_image"] = *patch.FeaturedImage
	}
	if patch.IsPublished != nil {
		set["is_published"] = *patch.IsPublished
	}
	return bson.M{"$set": set}
}

func commentUpdate(comment *model.Comment, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": now},
	}
}

func viewUpdate() bson.M {
	return bson.M{"$inc": bson.M{"view_count": 1}}
}
