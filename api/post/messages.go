// Package post описывает gRPC-контракт сервиса постов: сообщения, кодек и дескриптор сервиса.
// Сообщения передаются в JSON (content-subtype "json").
package post

import "google.golang.org/protobuf/types/known/timestamppb"

// Post - пост в ответах сервиса
type Post struct {
	Id          int32                  `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	CreatorId   int32                  `json:"creator_id"`
	IsPrivate   bool                   `json:"is_private"`
	Tags        []string               `json:"tags"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at"`
}

// Comment - комментарий к посту
type Comment struct {
	Id        int32                  `json:"id"`
	PostId    int32                  `json:"post_id"`
	UserId    int32                  `json:"user_id"`
	Text      string                 `json:"text"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

// TagList оборачивает список тегов, чтобы отличать отсутствующее поле от пустого списка
type TagList struct {
	Values []string `json:"values"`
}

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatorId   int32    `json:"creator_id"`
	IsPrivate   bool     `json:"is_private"`
	Tags        []string `json:"tags,omitempty"`
}

type GetPostRequest struct {
	PostId      int32 `json:"post_id"`
	RequesterId int32 `json:"requester_id"`
}

type ListPostsRequest struct {
	Page        int32    `json:"page"`
	PerPage     int32    `json:"per_page"`
	RequesterId int32    `json:"requester_id"`
	OnlyOwn     bool     `json:"only_own"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdatePostRequest - частичное обновление: nil-поля не меняются
type UpdatePostRequest struct {
	PostId      int32    `json:"post_id"`
	UpdaterId   int32    `json:"updater_id"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	IsPrivate   *bool    `json:"is_private,omitempty"`
	Tags        *TagList `json:"tags,omitempty"`
}

type DeletePostRequest struct {
	PostId      int32 `json:"post_id"`
	RequesterId int32 `json:"requester_id"`
}

type ViewPostRequest struct {
	PostId   int32 `json:"post_id"`
	ViewerId int32 `json:"viewer_id"`
}

type LikePostRequest struct {
	PostId int32 `json:"post_id"`
	UserId int32 `json:"user_id"`
}

type AddCommentRequest struct {
	PostId int32  `json:"post_id"`
	UserId int32  `json:"user_id"`
	Text   string `json:"text"`
}

type GetCommentsRequest struct {
	PostId      int32 `json:"post_id"`
	RequesterId int32 `json:"requester_id"`
	Page        int32 `json:"page"`
	PerPage     int32 `json:"per_page"`
}

type PostResponse struct {
	Post    *Post  `json:"post,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ListPostsResponse struct {
	Posts      []*Post `json:"posts"`
	TotalCount int32   `json:"total_count"`
	TotalPages int32   `json:"total_pages"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
}

type DeletePostResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ViewPostResponse struct {
	Success    bool   `json:"success"`
	ViewsCount int32  `json:"views_count"`
	Error      string `json:"error,omitempty"`
}

type LikePostResponse struct {
	Success    bool   `json:"success"`
	LikesCount int32  `json:"likes_count"`
	Error      string `json:"error,omitempty"`
}

type CommentResponse struct {
	Comment *Comment `json:"comment,omitempty"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

type GetCommentsResponse struct {
	Comments   []*Comment `json:"comments"`
	TotalCount int32      `json:"total_count"`
	TotalPages int32      `json:"total_pages"`
	Success    bool       `json:"success"`
	Error      string     `json:"error,omitempty"`
}
