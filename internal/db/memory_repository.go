package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/pagination"
)

type interactionKey struct {
	postID int32
	userID int32
}

// MemoryRepository - реализация Repository в памяти процесса.
// Используется при DB_DRIVER=memory и в тестах сервисного слоя.
type MemoryRepository struct {
	mutex sync.RWMutex
	now   func() time.Time

	posts    map[int32]*models.Post
	postTags map[int32][]int32 // post id -> tag ids
	tags     map[string]models.Tag
	tagsByID map[int32]models.Tag
	views    map[interactionKey]time.Time
	likes    map[interactionKey]time.Time
	comments map[int32][]*models.Comment // комментарии для каждого поста

	lastPostID    int32
	lastTagID     int32
	lastCommentID int32
}

// NewMemoryRepository создает пустой репозиторий в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		now:      time.Now,
		posts:    make(map[int32]*models.Post),
		postTags: make(map[int32][]int32),
		tags:     make(map[string]models.Tag),
		tagsByID: make(map[int32]models.Tag),
		views:    make(map[interactionKey]time.Time),
		likes:    make(map[interactionKey]time.Time),
		comments: make(map[int32][]*models.Comment),
	}
}

// Ping всегда успешен
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// CreatePost создает новый пост
func (r *MemoryRepository) CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.lastPostID++
	now := r.now()
	post := &models.Post{
		ID:          r.lastPostID,
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   in.CreatorID,
		IsPrivate:   in.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.posts[post.ID] = post
	r.postTags[post.ID] = r.resolveTagsLocked(in.Tags)
	return r.snapshotLocked(post), nil
}

// GetPost получает пост по ID
func (r *MemoryRepository) GetPost(ctx context.Context, postID int32) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	post, exists := r.posts[postID]
	if !exists {
		return nil, ErrNotFound
	}
	return r.snapshotLocked(post), nil
}

// ListPosts возвращает страницу постов с фильтрацией
func (r *MemoryRepository) ListPosts(ctx context.Context, filter models.PostFilter, page pagination.Params) ([]*models.Post, int32, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	wanted := make(map[string]struct{}, len(filter.Tags))
	for _, name := range filter.Tags {
		wanted[name] = struct{}{}
	}

	var filtered []*models.Post
	for _, post := range r.posts {
		if filter.OnlyOwn {
			if post.CreatorID != filter.RequesterID {
				continue
			}
		} else if post.IsPrivate && post.CreatorID != filter.RequesterID {
			// Пропускаем приватные посты других пользователей
			continue
		}

		if len(wanted) > 0 && !r.hasAnyTagLocked(post.ID, wanted) {
			continue
		}

		filtered = append(filtered, post)
	}

	// От новых к старым
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	totalCount := int32(len(filtered))
	start, end := bounds(page, totalCount)

	result := make([]*models.Post, 0, end-start)
	for _, post := range filtered[start:end] {
		result = append(result, r.snapshotLocked(post))
	}
	return result, totalCount, nil
}

// UpdatePost обновляет переданные поля поста
func (r *MemoryRepository) UpdatePost(ctx context.Context, postID int32, update models.PostUpdate) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, exists := r.posts[postID]
	if !exists {
		return nil, ErrNotFound
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Description != nil {
		post.Description = *update.Description
	}
	if update.IsPrivate != nil {
		post.IsPrivate = *update.IsPrivate
	}
	if update.Tags != nil {
		r.postTags[postID] = r.resolveTagsLocked(update.Tags)
	}

	post.UpdatedAt = r.now()
	return r.snapshotLocked(post), nil
}

// DeletePost удаляет пост вместе со всеми взаимодействиями. Теги остаются.
func (r *MemoryRepository) DeletePost(ctx context.Context, postID int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.posts[postID]; !exists {
		return ErrNotFound
	}

	delete(r.posts, postID)
	delete(r.postTags, postID)
	delete(r.comments, postID)
	for key := range r.views {
		if key.postID == postID {
			delete(r.views, key)
		}
	}
	for key := range r.likes {
		if key.postID == postID {
			delete(r.likes, key)
		}
	}
	return nil
}

// RecordView регистрирует просмотр поста
func (r *MemoryRepository) RecordView(ctx context.Context, postID, userID int32) (bool, int32, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.posts[postID]; !exists {
		return false, 0, ErrNotFound
	}

	key := interactionKey{postID: postID, userID: userID}
	_, seen := r.views[key]
	if !seen {
		r.views[key] = r.now()
	}
	return !seen, countFor(r.views, postID), nil
}

// ToggleLike добавляет или удаляет лайк поста
func (r *MemoryRepository) ToggleLike(ctx context.Context, postID, userID int32) (bool, int32, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.posts[postID]; !exists {
		return false, 0, ErrNotFound
	}

	key := interactionKey{postID: postID, userID: userID}
	_, liked := r.likes[key]
	if liked {
		delete(r.likes, key)
	} else {
		r.likes[key] = r.now()
	}
	return !liked, countFor(r.likes, postID), nil
}

// AddComment добавляет комментарий к посту
func (r *MemoryRepository) AddComment(ctx context.Context, postID, userID int32, text string) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.posts[postID]; !exists {
		return nil, ErrNotFound
	}

	r.lastCommentID++
	comment := &models.Comment{
		ID:        r.lastCommentID,
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: r.now(),
	}
	r.comments[postID] = append(r.comments[postID], comment)

	stored := *comment
	return &stored, nil
}

// ListComments возвращает комментарии от старых к новым
func (r *MemoryRepository) ListComments(ctx context.Context, postID int32, page pagination.Params) ([]*models.Comment, int32, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	// Комментарии добавляются в порядке создания, поэтому срез уже отсортирован
	postComments := r.comments[postID]
	totalCount := int32(len(postComments))
	start, end := bounds(page, totalCount)

	result := make([]*models.Comment, 0, end-start)
	for _, comment := range postComments[start:end] {
		stored := *comment
		result = append(result, &stored)
	}
	return result, totalCount, nil
}

// resolveTagsLocked находит или создает теги и возвращает их id, упорядоченные по имени тега
func (r *MemoryRepository) resolveTagsLocked(names []string) []int32 {
	unique := uniqueNames(names)
	ids := make([]int32, 0, len(unique))
	for _, name := range unique {
		tag, exists := r.tags[name]
		if !exists {
			r.lastTagID++
			tag = models.Tag{ID: r.lastTagID, Name: name}
			r.tags[name] = tag
			r.tagsByID[tag.ID] = tag
		}
		ids = append(ids, tag.ID)
	}
	return ids
}

func (r *MemoryRepository) hasAnyTagLocked(postID int32, wanted map[string]struct{}) bool {
	for _, tagID := range r.postTags[postID] {
		if _, ok := wanted[r.tagsByID[tagID].Name]; ok {
			return true
		}
	}
	return false
}

// snapshotLocked возвращает копию поста с тегами, чтобы вызывающий код не менял состояние хранилища
func (r *MemoryRepository) snapshotLocked(post *models.Post) *models.Post {
	copied := *post
	copied.Tags = make([]models.Tag, 0, len(r.postTags[post.ID]))
	for _, tagID := range r.postTags[post.ID] {
		copied.Tags = append(copied.Tags, r.tagsByID[tagID])
	}
	return &copied
}

func countFor(records map[interactionKey]time.Time, postID int32) int32 {
	var count int32
	for key := range records {
		if key.postID == postID {
			count++
		}
	}
	return count
}

// bounds переводит параметры страницы в границы среза.
// Страница за пределами выборки дает пустой срез [total:total].
func bounds(page pagination.Params, total int32) (int32, int32) {
	offset := page.Offset()
	if offset < 0 || offset >= int64(total) {
		return total, total
	}
	start := int32(offset)
	end := total
	if remaining := total - start; page.Limit() < remaining {
		end = start + page.Limit()
	}
	return start, end
}
