package mongo

import (
	"Inkwell/internal/model"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEscapesQuery(t *testing.T) {
	cases := []struct {
		query   string
		pattern string
	}{
		{"c++", `c\+\+`},
		{"(.*", `\(\.\*`},
		{"go lang", "go lang"},
		{" spaced ", " spaced "},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			filter := searchFilter(tc.query)
			assert.Equal(t, true, filter["is_published"])

			or, ok := filter["$or"].(bson.A)
			require.True(t, ok)
			require.Len(t, or, 2)

			want := primitive.Regex{Pattern: tc.pattern, Options: "i"}
			assert.Equal(t, bson.M{"title": want}, or[0])
			assert.Equal(t, bson.M{"content": want}, or[1])

			// 转义后的模式只匹配字面量
			re := regexp.MustCompile("(?i)" + tc.pattern)
			assert.True(t, re.MatchString("xx"+tc.query+"yy"))
		})
	}
}

func TestBuildFilter(t *testing.T) {
	categoryID := primitive.NewObjectID()

	assert.Equal(t, bson.M{}, buildFilter(model.PostFilter{}))
	assert.Equal(t, bson.M{"is_published": true}, buildFilter(model.PostFilter{PublishedOnly: true}))
	assert.Equal(t,
		bson.M{"is_published": true, "category_id": categoryID},
		buildFilter(model.PostFilter{PublishedOnly: true, CategoryID: &categoryID}))
}

func TestPatchUpdateSetsOnlyPresentFields(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, bson.M{"$set": bson.M{"updated_at": now}}, patchUpdate(&model.PostPatch{}, now))

	title := "New"
	excerpt := ""
	published := false
	categoryID := primitive.NewObjectID()
	tags := []string{"go"}
	update := patchUpdate(&model.PostPatch{
		Title:       &title,
		Excerpt:     &excerpt,
		CategoryID:  &categoryID,
		Tags:        &tags,
		IsPublished: &published,
	}, now)

	assert.Equal(t, bson.M{"$set": bson.M{
		"updated_at":   now,
		"title":        "New",
		"excerpt":      "",
		"category_id":  categoryID,
		"tags":         []string{"go"},
		"is_published": false,
	}}, update)
	assert.NotContains(t, update, "$push")
	assert.NotContains(t, update, "$inc")
}

func TestCommentAndViewUpdates(t *testing.T) {
	now := time.Now()
	comment := &model.Comment{ID: primitive.NewObjectID(), UserID: 7, Content: "hi", CreatedAt: now}

	assert.Equal(t, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": now},
	}, commentUpdate(comment, now))

	assert.Equal(t, bson.M{"$inc": bson.M{"view_count": 1}}, viewUpdate())
}
