package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/levalimpiev/post-interactions/internal/db"
	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/pagination"
	"github.com/levalimpiev/post-interactions/internal/privacy"
)

// EventPublisher отправляет события во внешнюю шину
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// PostService интерфейс сервиса для работы с постами и взаимодействиями с ними
type PostService interface {
	CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error)
	GetPost(ctx context.Context, postID, requesterID int32) (*models.Post, error)
	ListPosts(ctx context.Context, page, perPage int32, filter models.PostFilter) (*models.PostPage, error)
	UpdatePost(ctx context.Context, postID, updaterID int32, update models.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID int32) error

	ViewPost(ctx context.Context, postID, viewerID int32) (int32, error)
	LikePost(ctx context.Context, postID, userID int32) (int32, error)
	AddComment(ctx context.Context, postID, userID int32, text string) (*models.Comment, error)
	GetComments(ctx context.Context, postID, requesterID, page, perPage int32) (*models.CommentPage, error)
}

// postService реализация сервиса для работы с постами
type postService struct {
	repo      db.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPostService создает новый экземпляр сервиса
func NewPostService(repo db.Repository, publisher EventPublisher, logger *zap.Logger) PostService {
	return &postService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreatePost проверяет и создает новый пост
func (s *postService) CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	post, err := s.repo.CreatePost(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("создание поста: %w", err)
	}
	return post, nil
}

// GetPost получает пост по ID с учетом приватности
func (s *postService) GetPost(ctx context.Context, postID, requesterID int32) (*models.Post, error) {
	return s.visiblePost(ctx, postID, requesterID)
}

// ListPosts возвращает страницу постов, видимых запрашивающему
func (s *postService) ListPosts(ctx context.Context, page, perPage int32, filter models.PostFilter) (*models.PostPage, error) {
	params := pagination.Clamp(page, perPage)

	posts, totalCount, err := s.repo.ListPosts(ctx, filter, params)
	if err != nil {
		return nil, fmt.Errorf("получение списка постов: %w", err)
	}

	return &models.PostPage{
		Posts:      posts,
		TotalCount: totalCount,
		TotalPages: params.TotalPages(totalCount),
	}, nil
}

// UpdatePost обновляет переданные поля поста. Изменять пост может только создатель.
func (s *postService) UpdatePost(ctx context.Context, postID, updaterID int32, update models.PostUpdate) (*models.Post, error) {
	if err := validateStruct(update); err != nil {
		return nil, err
	}

	if _, err := s.ownedPost(ctx, postID, updaterID); err != nil {
		return nil, err
	}

	post, err := s.repo.UpdatePost(ctx, postID, update)
	if err != nil {
		return nil, storageError("обновление поста", err)
	}
	return post, nil
}

// DeletePost удаляет пост. Удалять пост может только создатель.
func (s *postService) DeletePost(ctx context.Context, postID, requesterID int32) error {
	if _, err := s.ownedPost(ctx, postID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return storageError("удаление поста", err)
	}
	return nil
}

// ViewPost регистрирует просмотр и возвращает число уникальных просмотров.
// Событие отправляется только при первом просмотре пользователем.
func (s *postService) ViewPost(ctx context.Context, postID, viewerID int32) (int32, error) {
	if _, err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return 0, err
	}

	created, viewsCount, err := s.repo.RecordView(ctx, postID, viewerID)
	if err != nil {
		return 0, storageError("регистрация просмотра", err)
	}

	if created {
		s.publish(ctx, models.NewEvent(models.EventPostViewed, postID, viewerID))
	}
	return viewsCount, nil
}

// LikePost ставит или снимает лайк и возвращает число лайков.
// Событие отправляется только когда лайк поставлен.
func (s *postService) LikePost(ctx context.Context, postID, userID int32) (int32, error) {
	if _, err := s.visiblePost(ctx, postID, userID); err != nil {
		return 0, err
	}

	liked, likesCount, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return 0, storageError("изменение лайка", err)
	}

	if liked {
		s.publish(ctx, models.NewEvent(models.EventPostLiked, postID, userID))
	}
	return likesCount, nil
}

// AddComment добавляет комментарий к видимому посту
func (s *postService) AddComment(ctx context.Context, postID, userID int32, text string) (*models.Comment, error) {
	if _, err := s.visiblePost(ctx, postID, userID); err != nil {
		return nil, err
	}

	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment, err := s.repo.AddComment(ctx, postID, userID, text)
	if err != nil {
		return nil, storageError("добавление комментария", err)
	}

	event := models.NewEvent(models.EventPostCommented, postID, userID)
	event.CommentID = comment.ID
	s.publish(ctx, event)

	return comment, nil
}

// GetComments возвращает страницу комментариев, от старых к новым
func (s *postService) GetComments(ctx context.Context, postID, requesterID, page, perPage int32) (*models.CommentPage, error) {
	if _, err := s.visiblePost(ctx, postID, requesterID); err != nil {
		return nil, err
	}

	params := pagination.Clamp(page, perPage)
	comments, totalCount, err := s.repo.ListComments(ctx, postID, params)
	if err != nil {
		return nil, storageError("получение комментариев", err)
	}

	return &models.CommentPage{
		Comments:   comments,
		TotalCount: totalCount,
		TotalPages: params.TotalPages(totalCount),
	}, nil
}

// visiblePost получает пост и проверяет, что запрашивающий может его видеть.
// Отсутствие поста проверяется раньше прав доступа.
func (s *postService) visiblePost(ctx context.Context, postID, requesterID int32) (*models.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, storageError("получение поста", err)
	}
	if !privacy.CanView(post, requesterID) {
		return nil, ErrForbidden
	}
	return post, nil
}

// ownedPost получает пост и проверяет, что запрашивающий - его создатель
func (s *postService) ownedPost(ctx context.Context, postID, requesterID int32) (*models.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, storageError("получение поста", err)
	}
	if post.CreatorID != requesterID {
		return nil, ErrForbidden
	}
	return post, nil
}

// publish отправляет событие после фиксации транзакции. Ошибка только логируется.
func (s *postService) publish(ctx context.Context, event models.Event) {
	// Отмена RPC не должна отменять отправку уже зафиксированного изменения
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("не удалось опубликовать событие",
			zap.String("event_type", string(event.Type)),
			zap.Int32("post_id", event.PostID),
			zap.Int32("user_id", event.UserID),
			zap.Error(err),
		)
	}
}

// storageError переводит ошибки хранилища в ошибки сервисного слоя
func storageError(operation string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", operation, err)
}
