package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	excerptLength    = 200
	maxCommentLength = 500
)

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, token string) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error)
	SearchPosts(ctx context.Context, query string) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, principal *security.Principal, id string, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, principal *security.Principal, id string) error
	AddComment(ctx context.Context, postID string, userID uint64, content string) (*dto.PostDTO, error)
	IncrementView(ctx context.Context, id string) error
}

// MediaClaimer 文章引用配图后将其移出待清理列表
type MediaClaimer interface {
	Untrack(ctx context.Context, fileKey string) error
}

type postServiceImpl struct {
	postRepo     mongo.PostRepo
	categoryRepo mongo.CategoryRepo
	userRepo     repository.UserRepo
	media        MediaClaimer
	resolver     Resolver[model.Post]
	opts         PostOptions
}

// NewPostService media 可以为 nil，此时不跟踪配图引用
func NewPostService(postRepo mongo.PostRepo, categoryRepo mongo.CategoryRepo, userRepo repository.UserRepo, media MediaClaimer, opts PostOptions) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		media:        media,
		resolver: Resolver[model.Post]{
			ByID:   postRepo.GetPostByID,
			BySlug: postRepo.GetPostBySlug,
		},
		opts: opts,
	}
}

// CreatePost 作者固定为当前用户，slug 由去掉首尾空白后的标题生成
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	slug := util.Slugify(req.Title)
	if slug == "" {
		return nil, util.NewValidationError("title", "Title must contain at least one letter or digit")
	}

	categoryID, err := s.requireCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	featuredImage := req.FeaturedImage
	if featuredImage == "" {
		featuredImage = s.opts.DefaultImage
	}

	now := time.Now()
	post := &model.Post{
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		AuthorID:      authorID,
		CategoryID:    categoryID,
		Tags:          util.CleanTags(req.Tags),
		FeaturedImage: featuredImage,
		IsPublished:   req.IsPublished,
		Comments:      []model.Comment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, mongo.ErrDuplicate) {
			return nil, ErrPostTitleExist
		}
		return nil, err
	}

	s.claimImage(ctx, post.FeaturedImage)
	log.InfoContext(ctx, "post created", "post_id", post.ID.Hex(), "author_id", authorID)
	return s.assembleOne(ctx, post)
}

// GetPost 按 id 或 slug 获取文章，并原子地增加一次浏览量
func (s *postServiceImpl) GetPost(ctx context.Context, token string) (*dto.PostDTO, error) {
	post, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	viewed, err := s.postRepo.IncrementViewCount(ctx, post.ID.Hex())
	if err != nil {
		return nil, err
	}
	if viewed == nil {
		return nil, ErrPostNotFound
	}

	return s.assembleOne(ctx, viewed)
}

func (s *postServiceImpl) IncrementView(ctx context.Context, id string) error {
	post, err := s.postRepo.IncrementViewCount(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}

// ListPosts 只返回已发布文章，按创建时间倒序分页
func (s *postServiceImpl) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error) {
	window := newPageWindow(query.Page, query.Limit, s.opts.DefaultPageSize)
	page := &dto.PostPageDTO{
		Posts: []*dto.PostDTO{},
		Page:  window.Page,
	}

	filter := model.PostFilter{PublishedOnly: true}
	if query.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(query.Category)
		if err != nil {
			// 非法的分类 ID 不可能匹配任何文章
			return page, nil
		}
		filter.CategoryID = &categoryID
	}

	total, err := s.postRepo.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	page.Total = total
	page.TotalPages = totalPages(total, window.Size)

	if window.Offset() >= total {
		return page, nil
	}

	posts, err := s.postRepo.ListPosts(ctx, filter, window.Offset(), int64(window.Size))
	if err != nil {
		return nil, err
	}

	page.Posts, err = s.assemble(ctx, posts)
	if err != nil {
		return nil, err
	}
	page.Count = len(page.Posts)
	return page, nil
}

// SearchPosts 标题或正文包含关键词，最多返回 SearchLimit 条；关键词按原样匹配，只有全空白才拒绝
func (s *postServiceImpl) SearchPosts(ctx context.Context, query string) ([]*dto.PostDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryEmpty
	}

	posts, err := s.postRepo.SearchPosts(ctx, query, int64(s.opts.SearchLimit))
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

// UpdatePost 只修改请求中出现的字段；标题变化不会重新生成 slug
// 先判断文章是否存在和权限，再校验请求体
func (s *postServiceImpl) UpdatePost(ctx context.Context, principal *security.Principal, id string, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	_, err := Authorize(ctx, principal, func(ctx context.Context) (*model.Post, error) {
		return s.postRepo.GetPostByID(ctx, id)
	}, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	if err = util.ValidateDTO(req); err != nil {
		return nil, err
	}

	patch := &model.PostPatch{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	}
	if req.FeaturedImage != nil && *req.FeaturedImage == "" {
		// 清空配图等同于恢复默认图
		defaultImage := s.opts.DefaultImage
		patch.FeaturedImage = &defaultImage
	}
	if req.Category != nil {
		categoryID, err := s.requireCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		patch.CategoryID = &categoryID
	}
	if req.Tags != nil {
		tags := util.CleanTags(*req.Tags)
		patch.Tags = &tags
	}

	updated, err := s.postRepo.UpdatePost(ctx, id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrDuplicate) {
			return nil, ErrPostTitleExist
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	if patch.FeaturedImage != nil {
		s.claimImage(ctx, *patch.FeaturedImage)
	}

	return s.assembleOne(ctx, updated)
}

// DeletePost 评论随文档一起删除
func (s *postServiceImpl) DeletePost(ctx context.Context, principal *security.Principal, id string) error {
	_, err := Authorize(ctx, principal, func(ctx context.Context) (*model.Post, error) {
		return s.postRepo.GetPostByID(ctx, id)
	}, ErrPostNotFound)
	if err != nil {
		return err
	}

	deleted, err := s.postRepo.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	log.InfoContext(ctx, "post deleted", "post_id", id, "operator_id", principal.ID)
	return nil
}

// AddComment 追加一条评论，评论者为当前用户
func (s *postServiceImpl) AddComment(ctx context.Context, postID string, userID uint64, content string) (*dto.PostDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxCommentLength {
		return nil, util.NewValidationError("content", "Comment must be between 1 and 500 characters")
	}

	comment := &model.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	post, err := s.postRepo.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return s.assembleOne(ctx, post)
}

// claimImage 失败只记录日志，文章已经保存成功
func (s *postServiceImpl) claimImage(ctx context.Context, fileKey string) {
	if s.media == nil || fileKey == "" || fileKey == s.opts.DefaultImage {
		return
	}
	if err := s.media.Untrack(ctx, fileKey); err != nil {
		log.WarnContext(ctx, "failed to claim featured image", "fileKey", fileKey, "err", err)
	}
}

func (s *postServiceImpl) requireCategory(ctx context.Context, id string) (primitive.ObjectID, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if category == nil {
		return primitive.NilObjectID, ErrCategoryNotFound
	}
	return category.ID, nil
}

func (s *postServiceImpl) assembleOne(ctx context.Context, post *model.Post) (*dto.PostDTO, error) {
	list, err := s.assemble(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// assemble 批量填充作者、分类和评论者信息
func (s *postServiceImpl) assemble(ctx context.Context, posts []*model.Post) ([]*dto.PostDTO, error) {
	userIDs := make([]uint64, 0)
	categoryIDs := make([]primitive.ObjectID, 0)
	for _, p := range posts {
		userIDs = append(userIDs, p.AuthorID)
		for _, c := range p.Comments {
			userIDs = append(userIDs, c.UserID)
		}
		if !p.CategoryID.IsZero() {
			categoryIDs = append(categoryIDs, p.CategoryID)
		}
	}

	users, err := s.userRepo.GetUserByIds(ctx, dedupe(userIDs))
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	categories, err := s.categoryRepo.GetCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryMap := make(map[primitive.ObjectID]*model.Category, len(categories))
	for _, c := range categories {
		categoryMap[c.ID] = c
	}

	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		item := &dto.PostDTO{
			ID:            p.ID.Hex(),
			Title:         p.Title,
			Slug:          p.Slug,
			Content:       p.Content,
			Excerpt:       p.Excerpt,
			Tags:          p.Tags,
			FeaturedImage: p.FeaturedImage,
			IsPublished:   p.IsPublished,
			ViewCount:     p.ViewCount,
			Comments:      make([]*dto.CommentDTO, 0, len(p.Comments)),
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
		if item.Excerpt == "" {
			item.Excerpt = util.Truncate(p.Content, excerptLength)
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if p.FeaturedImage != s.opts.DefaultImage {
			item.FeaturedImage = minio.GetPublicURL(p.FeaturedImage)
		}
		if u, ok := userMap[p.AuthorID]; ok {
			item.Author = &dto.UserBriefDTO{ID: u.ID, Username: u.Username, Email: u.Email}
		}
		if c, ok := categoryMap[p.CategoryID]; ok {
			item.Category = &dto.CategoryBriefDTO{ID: c.ID.Hex(), Name: c.Name, Slug: c.Slug}
		}
		for _, c := range p.Comments {
			comment := &dto.CommentDTO{
				ID:        c.ID.Hex(),
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
			}
			if u, ok := userMap[c.UserID]; ok {
				comment.User = &dto.UserBriefDTO{ID: u.ID, Username: u.Username}
			}
			item.Comments = append(item.Comments, comment)
		}
		out = append(out, item)
	}
	return out, nil
}

func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
