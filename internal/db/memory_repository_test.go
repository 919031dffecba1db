package db

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMemoryRepository возвращает репозиторий с управляемыми часами: каждый вызов сдвигает время на секунду
func newTestMemoryRepository() *MemoryRepository {
	repo := NewMemoryRepository()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func createPost(t *testing.T, repo *MemoryRepository, creatorID int32, isPrivate bool, tags ...string) *models.Post {
	t.Helper()
	post, err := repo.CreatePost(context.Background(), models.NewPost{
		Title:       "Заголовок",
		Description: "Достаточно длинное описание",
		CreatorID:   creatorID,
		IsPrivate:   isPrivate,
		Tags:        tags,
	})
	require.NoError(t, err)
	return post
}

func TestMemoryRepository_CreatePostDeduplicatesTags(t *testing.T) {
	repo := newTestMemoryRepository()

	first := createPost(t, repo, 1, false, "tech", "news", "tech")
	second := createPost(t, repo, 2, false, "news")

	assert.Equal(t, []string{"news", "tech"}, first.TagNames())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	// Тег с тем же именем переиспользуется
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID)
}

func TestMemoryRepository_GetPostReturnsCopy(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	created := createPost(t, repo, 1, false, "go")

	got, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	got.Title = "изменено снаружи"
	got.Tags[0].Name = "hacked"

	again, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Заголовок", again.Title)
	assert.Equal(t, []string{"go"}, again.TagNames())

	_, err = repo.GetPost(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ListPosts(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()

	p1 := createPost(t, repo, 1, false, "go")
	p2 := createPost(t, repo, 1, true, "db")
	p3 := createPost(t, repo, 2, false, "db", "go")
	p4 := createPost(t, repo, 2, true, "go")

	ids := func(posts []*models.Post) []int32 {
		result := make([]int32, len(posts))
		for i, p := range posts {
			result[i] = p.ID
		}
		return result
	}

	// Чужие приватные посты скрыты, порядок - от новых к старым
	posts, total, err := repo.ListPosts(ctx, models.PostFilter{RequesterID: 1}, pagination.Clamp(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Equal(t, []int32{p3.ID, p2.ID, p1.ID}, ids(posts))

	// Только свои, включая приватные
	posts, total, err = repo.ListPosts(ctx, models.PostFilter{RequesterID: 2, OnlyOwn: true}, pagination.Clamp(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Equal(t, []int32{p4.ID, p3.ID}, ids(posts))

	// Фильтр по тегам работает как ИЛИ
	posts, total, err = repo.ListPosts(ctx, models.PostFilter{RequesterID: 3, Tags: []string{"db", "missing"}}, pagination.Clamp(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Equal(t, []int32{p3.ID}, ids(posts))

	// Пагинация
	posts, total, err = repo.ListPosts(ctx, models.PostFilter{RequesterID: 1}, pagination.Clamp(2, 2))
	require.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Equal(t, []int32{p1.ID}, ids(posts))

	posts, _, err = repo.ListPosts(ctx, models.PostFilter{RequesterID: 1}, pagination.Clamp(5, 2))
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestMemoryRepository_HugePageIsEmpty(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false)
	createPost(t, repo, 1, false)
	_, err := repo.AddComment(ctx, post.ID, 2, "комментарий")
	require.NoError(t, err)

	for _, page := range []int32{30_000_000, math.MaxInt32} {
		posts, total, err := repo.ListPosts(ctx, models.PostFilter{RequesterID: 1}, pagination.Clamp(page, 100))
		require.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Empty(t, posts)

		comments, total, err := repo.ListComments(ctx, post.ID, pagination.Clamp(page, 100))
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Empty(t, comments)
	}
}

func TestMemoryRepository_UpdatePost(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false, "go", "db")

	description := "Новое достаточно длинное описание"
	updated, err := repo.UpdatePost(ctx, post.ID, models.PostUpdate{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, post.Title, updated.Title)
	assert.Equal(t, []string{"db", "go"}, updated.TagNames())
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))

	updated, err = repo.UpdatePost(ctx, post.ID, models.PostUpdate{Tags: []string{"rust"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, updated.TagNames())

	updated, err = repo.UpdatePost(ctx, post.ID, models.PostUpdate{Tags: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)

	_, err = repo.UpdatePost(ctx, 999, models.PostUpdate{Description: &description})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_DeletePostCascades(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false, "go")

	_, _, err := repo.RecordView(ctx, post.ID, 2)
	require.NoError(t, err)
	_, _, err = repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, post.ID, 2, "комментарий")
	require.NoError(t, err)

	require.NoError(t, repo.DeletePost(ctx, post.ID))
	assert.ErrorIs(t, repo.DeletePost(ctx, post.ID), ErrNotFound)
	assert.Empty(t, repo.views)
	assert.Empty(t, repo.likes)
	assert.Empty(t, repo.comments)
	// Теги не удаляются вместе с постом
	assert.Contains(t, repo.tags, "go")
}

func TestMemoryRepository_RecordViewIsIdempotent(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false)

	created, count, err := repo.RecordView(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int32(1), count)

	created, count, err = repo.RecordView(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int32(1), count)

	created, count, err = repo.RecordView(ctx, post.ID, 3)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int32(2), count)

	_, _, err = repo.RecordView(ctx, 999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ToggleLike(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false)

	liked, count, err := repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int32(1), count)

	liked, count, err = repo.ToggleLike(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int32(0), count)

	_, _, err = repo.ToggleLike(ctx, 999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ListCommentsOldestFirst(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()
	post := createPost(t, repo, 1, false)

	for i := 0; i < 12; i++ {
		_, err := repo.AddComment(ctx, post.ID, 2, "комментарий")
		require.NoError(t, err)
	}

	comments, total, err := repo.ListComments(ctx, post.ID, pagination.Clamp(3, 5))
	require.NoError(t, err)
	assert.Equal(t, int32(12), total)
	require.Len(t, comments, 2)
	assert.Equal(t, int32(11), comments[0].ID)
	assert.Equal(t, int32(12), comments[1].ID)
	assert.True(t, comments[0].CreatedAt.Before(comments[1].CreatedAt))

	_, err = repo.AddComment(ctx, 999, 2, "комментарий")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetPost(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
