package server

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/levalimpiev/post-interactions/api/post"
	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/service"
)

const internalErrorMessage = "внутренняя ошибка сервера"

// PostServer реализует gRPC-сервер для работы с постами
type PostServer struct {
	pb.UnimplementedPostServiceServer
	service service.PostService
	logger  *zap.Logger
}

// NewPostServer создает новый экземпляр сервера
func NewPostServer(service service.PostService, logger *zap.Logger) *PostServer {
	return &PostServer{
		service: service,
		logger:  logger,
	}
}

// CreatePost создает новый пост
func (s *PostServer) CreatePost(ctx context.Context, req *pb.CreatePostRequest) (*pb.PostResponse, error) {
	post, err := s.service.CreatePost(ctx, models.NewPost{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   req.CreatorId,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.PostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.PostResponse{
		Post:    toProtoPost(post),
		Success: true,
	}, nil
}

// GetPost получает пост по ID
func (s *PostServer) GetPost(ctx context.Context, req *pb.GetPostRequest) (*pb.PostResponse, error) {
	post, err := s.service.GetPost(ctx, req.PostId, req.RequesterId)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.PostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.PostResponse{
		Post:    toProtoPost(post),
		Success: true,
	}, nil
}

// ListPosts возвращает список постов с пагинацией и фильтрацией
func (s *PostServer) ListPosts(ctx context.Context, req *pb.ListPostsRequest) (*pb.ListPostsResponse, error) {
	page, err := s.service.ListPosts(ctx, req.Page, req.PerPage, models.PostFilter{
		RequesterID: req.RequesterId,
		OnlyOwn:     req.OnlyOwn,
		Tags:        req.Tags,
	})
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.ListPostsResponse{Success: false, Error: message}, statusErr
	}

	posts := make([]*pb.Post, len(page.Posts))
	for i, post := range page.Posts {
		posts[i] = toProtoPost(post)
	}

	return &pb.ListPostsResponse{
		Posts:      posts,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Success:    true,
	}, nil
}

// UpdatePost обновляет переданные поля поста
func (s *PostServer) UpdatePost(ctx context.Context, req *pb.UpdatePostRequest) (*pb.PostResponse, error) {
	update := models.PostUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	}

	// Переданный пустой список очищает теги, отсутствующий - оставляет как есть
	if req.Tags != nil {
		update.Tags = req.Tags.Values
		if update.Tags == nil {
			update.Tags = []string{}
		}
	}

	post, err := s.service.UpdatePost(ctx, req.PostId, req.UpdaterId, update)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.PostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.PostResponse{
		Post:    toProtoPost(post),
		Success: true,
	}, nil
}

// DeletePost удаляет пост
func (s *PostServer) DeletePost(ctx context.Context, req *pb.DeletePostRequest) (*pb.DeletePostResponse, error) {
	if err := s.service.DeletePost(ctx, req.PostId, req.RequesterId); err != nil {
		message, statusErr := s.statusError(err)
		return &pb.DeletePostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.DeletePostResponse{Success: true}, nil
}

// ViewPost регистрирует просмотр поста
func (s *PostServer) ViewPost(ctx context.Context, req *pb.ViewPostRequest) (*pb.ViewPostResponse, error) {
	viewsCount, err := s.service.ViewPost(ctx, req.PostId, req.ViewerId)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.ViewPostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.ViewPostResponse{
		Success:    true,
		ViewsCount: viewsCount,
	}, nil
}

// LikePost ставит или снимает лайк
func (s *PostServer) LikePost(ctx context.Context, req *pb.LikePostRequest) (*pb.LikePostResponse, error) {
	likesCount, err := s.service.LikePost(ctx, req.PostId, req.UserId)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.LikePostResponse{Success: false, Error: message}, statusErr
	}

	return &pb.LikePostResponse{
		Success:    true,
		LikesCount: likesCount,
	}, nil
}

// AddComment добавляет комментарий к посту
func (s *PostServer) AddComment(ctx context.Context, req *pb.AddCommentRequest) (*pb.CommentResponse, error) {
	comment, err := s.service.AddComment(ctx, req.PostId, req.UserId, req.Text)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.CommentResponse{Success: false, Error: message}, statusErr
	}

	return &pb.CommentResponse{
		Comment: toProtoComment(comment),
		Success: true,
	}, nil
}

// GetComments возвращает комментарии к посту с пагинацией
func (s *PostServer) GetComments(ctx context.Context, req *pb.GetCommentsRequest) (*pb.GetCommentsResponse, error) {
	page, err := s.service.GetComments(ctx, req.PostId, req.RequesterId, req.Page, req.PerPage)
	if err != nil {
		message, statusErr := s.statusError(err)
		return &pb.GetCommentsResponse{Success: false, Error: message}, statusErr
	}

	comments := make([]*pb.Comment, len(page.Comments))
	for i, comment := range page.Comments {
		comments[i] = toProtoComment(comment)
	}

	return &pb.GetCommentsResponse{
		Comments:   comments,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Success:    true,
	}, nil
}

// statusError переводит ошибку сервисного слоя в gRPC-статус.
// Подробности внутренних ошибок только логируются.
func (s *PostServer) statusError(err error) (string, error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return err.Error(), status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return err.Error(), status.Error(codes.PermissionDenied, err.Error())
	case errors.As(err, &validationErr):
		return err.Error(), status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("ошибка при обработке запроса", zap.Error(err))
		return internalErrorMessage, status.Error(codes.Internal, internalErrorMessage)
	}
}

func toProtoPost(post *models.Post) *pb.Post {
	return &pb.Post{
		Id:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		CreatorId:   post.CreatorID,
		IsPrivate:   post.IsPrivate,
		Tags:        post.TagNames(),
		CreatedAt:   timestamppb.New(post.CreatedAt),
		UpdatedAt:   timestamppb.New(post.UpdatedAt),
	}
}

func toProtoComment(comment *models.Comment) *pb.Comment {
	return &pb.Comment{
		Id:        comment.ID,
		PostId:    comment.PostID,
		UserId:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: timestamppb.New(comment.CreatedAt),
	}
}
