package db

import (
	"context"

	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/pagination"
)

// PostRepository интерфейс для работы с хранилищем постов и их тегов.
// Проверки прав доступа выполняет сервисный слой.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.NewPost) (*models.Post, error)
	GetPost(ctx context.Context, postID int32) (*models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, page pagination.Params) ([]*models.Post, int32, error)
	UpdatePost(ctx context.Context, postID int32, update models.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, postID int32) error
}

// InteractionRepository интерфейс для просмотров, лайков и комментариев
type InteractionRepository interface {
	// RecordView добавляет просмотр, если пользователь еще не смотрел пост.
	// created=true только если запись была создана этим вызовом.
	RecordView(ctx context.Context, postID, userID int32) (created bool, viewsCount int32, err error)
	// ToggleLike удаляет существующий лайк или ставит новый.
	// liked=true только если лайк был поставлен этим вызовом.
	ToggleLike(ctx context.Context, postID, userID int32) (liked bool, likesCount int32, err error)
	AddComment(ctx context.Context, postID, userID int32, text string) (*models.Comment, error)
	ListComments(ctx context.Context, postID int32, page pagination.Params) ([]*models.Comment, int32, error)
}

// Repository объединяет все операции хранилища
type Repository interface {
	PostRepository
	InteractionRepository
	Ping(ctx context.Context) error
}
