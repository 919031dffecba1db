package models

import "time"

// Comment - комментарий к посту
type Comment struct {
	ID        int32     `json:"id"`
	PostID    int32     `json:"post_id"`
	UserID    int32     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentPage - страница комментариев к посту
type CommentPage struct {
	Comments   []*Comment
	TotalCount int32
	TotalPages int32
}
