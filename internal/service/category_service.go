package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/util"
	"context"
	"errors"
	"time"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, token string) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id string, req *dto.CategoryUpdateDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryServiceImpl struct {
	categoryRepo mongo.CategoryRepo
	resolver     Resolver[model.Category]
}

func NewCategoryService(categoryRepo mongo.CategoryRepo) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		resolver: Resolver[model.Category]{
			ByID:   categoryRepo.GetCategoryByID,
			BySlug: categoryRepo.GetCategoryBySlug,
		},
	}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, token string) (*dto.CategoryDTO, error) {
	category, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryDTO(category), nil
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	slug := util.Slugify(req.Name)
	if slug == "" {
		return nil, util.NewValidationError("name", "Name must contain at least one letter or digit")
	}

	exist, err := s.categoryRepo.GetCategoryByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryExist
	}

	now := time.Now()
	category := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, mongo.ErrDuplicate) {
			return nil, ErrCategoryExist
		}
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// UpdateCategory 名称变化时重新生成 slug
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id string, req *dto.CategoryUpdateDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	patch := &model.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Name != nil {
		slug := util.Slugify(*req.Name)
		if slug == "" {
			return nil, util.NewValidationError("name", "Name must contain at least one letter or digit")
		}
		patch.Slug = &slug
	}

	category, err := s.categoryRepo.UpdateCategory(ctx, id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrDuplicate) {
			return nil, ErrCategoryExist
		}
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryDTO(category), nil
}

// DeleteCategory 引用该分类的文章保持不变
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	deleted, err := s.categoryRepo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}

func toCategoryDTO(c *model.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
