package mongo

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepo interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type categoryRepoImpl struct {
	col *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) CategoryRepo {
	return &categoryRepoImpl{
		col: db.Collection("categories"),
	}
}

// EnsureCategoryIndexes name 与 slug 均唯一
func EnsureCategoryIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return errors.Wrap(err, "create category indexes")
}

func (s *categoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, category); err != nil {
		return wrapWriteErr(err, "insert category")
	}
	return nil
}

func (s *categoryRepoImpl) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *categoryRepoImpl) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *categoryRepoImpl) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *categoryRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.Category, error) {
	category := &model.Category{}
	if err := s.col.FindOne(ctx, filter).Decode(category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category")
	}
	return category, nil
}

func (s *categoryRepoImpl) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	if len(ids) == 0 {
		return []*model.Category{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// ListCategories 按名称升序
func (s *categoryRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *categoryRepoImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Category, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.Category, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	return list, nil
}

func (s *categoryRepoImpl) UpdateCategory(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	category := &model.Category{}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapWriteErr(err, "update category")
	}
	return category, nil
}

// DeleteCategory 不级联处理引用它的文章
func (s *categoryRepoImpl) DeleteCategory(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrap(err, "delete category")
	}
	return result.DeletedCount > 0, nil
}
