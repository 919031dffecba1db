package models

import "time"

// EventType - тип доменного события
type EventType string

const (
	EventPostViewed    EventType = "post_viewed"
	EventPostLiked     EventType = "post_liked"
	EventPostCommented EventType = "post_commented"
)

// Event описывает изменение состояния, которое отправляется во внешнюю шину
type Event struct {
	Type       EventType `json:"event_type"`
	PostID     int32     `json:"post_id"`
	UserID     int32     `json:"user_id"`
	CommentID  int32     `json:"comment_id,omitempty"`
	OccurredAt time.Time `json:"timestamp"`
}

// NewEvent создает событие с текущим временем в UTC
func NewEvent(eventType EventType, postID, userID int32) Event {
	return Event{
		Type:       eventType,
		PostID:     postID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}
