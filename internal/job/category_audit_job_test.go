package job

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo/mock"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAuditFindDangling(t *testing.T) {
	ctx := context.Background()
	posts := mock.NewPostRepo()
	categories := mock.NewCategoryRepo()

	kept := &model.Category{Name: "Go", Slug: "go"}
	gone := &model.Category{Name: "Rust", Slug: "rust"}
	require.NoError(t, categories.CreateCategory(ctx, kept))
	require.NoError(t, categories.CreateCategory(ctx, gone))

	require.NoError(t, posts.CreatePost(ctx, &model.Post{Title: "a", Slug: "a", CategoryID: kept.ID}))
	require.NoError(t, posts.CreatePost(ctx, &model.Post{Title: "b", Slug: "b", CategoryID: gone.ID}))
	require.NoError(t, posts.CreatePost(ctx, &model.Post{Title: "c", Slug: "c", CategoryID: gone.ID}))

	deleted, err := categories.DeleteCategory(ctx, gone.ID.Hex())
	require.NoError(t, err)
	require.True(t, deleted)

	job := NewCategoryAuditJob(posts, categories)
	dangling, err := job.FindDangling(ctx)
	require.NoError(t, err)
	require.Len(t, dangling, 1)
	assert.Equal(t, gone.ID, dangling[0])

	// 只报告，不修改文章
	post, err := posts.GetPostBySlug(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, gone.ID, post.CategoryID)

	job.Run()
}
