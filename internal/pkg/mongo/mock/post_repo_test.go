package mock

import (
	"Inkwell/internal/model"
	repo "Inkwell/internal/pkg/mongo"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostRepoDuplicateSlug(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()

	require.NoError(t, r.CreatePost(ctx, &model.Post{Title: "A", Slug: "a"}))
	assert.ErrorIs(t, r.CreatePost(ctx, &model.Post{Title: "A", Slug: "a"}), repo.ErrDuplicate)
}

func TestPostRepoConcurrentIncrement(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()
	post := &model.Post{Title: "A", Slug: "a"}
	require.NoError(t, r.CreatePost(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.IncrementViewCount(ctx, post.ID.Hex())
		}()
	}
	wg.Wait()

	got, err := r.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ViewCount)
}

func TestPostRepoConcurrentAppendAndUpdate(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()
	post := &model.Post{Title: "A", Slug: "a"}
	require.NoError(t, r.CreatePost(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = r.AppendComment(ctx, post.ID.Hex(), &model.Comment{ID: primitive.NewObjectID(), UserID: uint64(i), Content: "hi"})
		}(i)
		go func() {
			defer wg.Done()
			title := "B"
			_, _ = r.UpdatePost(ctx, post.ID.Hex(), &model.PostPatch{Title: &title})
		}()
	}
	wg.Wait()

	got, err := r.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, got.Comments, 20)
	assert.Equal(t, "B", got.Title)
}

func TestPostRepoListOrderAndFilter(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()
	base := time.Now()
	cat := primitive.NewObjectID()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.CreatePost(ctx, &model.Post{
			Slug:        string(rune('a' + i)),
			IsPublished: i != 4,
			CategoryID:  cat,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := r.ListPosts(ctx, model.PostFilter{PublishedOnly: true, CategoryID: &cat}, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "d", list[0].Slug)
	assert.Equal(t, "a", list[3].Slug)

	other := primitive.NewObjectID()
	total, err := r.CountPosts(ctx, model.PostFilter{PublishedOnly: true, CategoryID: &other})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPostRepoMissing(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()

	got, err := r.GetPostByID(ctx, "not-an-id")
	assert.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := r.DeletePost(ctx, primitive.NewObjectID().Hex())
	assert.NoError(t, err)
	assert.False(t, deleted)
}
