package models

import "time"

// Tag представляет тег, уникальный по имени
type Tag struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Post представляет пост со связанными тегами
type Post struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   int32     `json:"creator_id"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []Tag     `json:"tags"`
}

// TagNames возвращает имена тегов поста в том порядке, в котором они хранятся
func (p *Post) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		names[i] = tag.Name
	}
	return names
}

// NewPost содержит данные для создания поста
type NewPost struct {
	Title       string `validate:"min=3,max=255"`
	Description string `validate:"min=10,max=2000"`
	CreatorID   int32
	IsPrivate   bool
	Tags        []string `validate:"max=10,dive,min=2,max=50,tagname"`
}

// PostUpdate описывает частичное обновление поста.
// nil-поле означает "не менять". Для тегов nil-срез означает "не менять",
// а пустой не-nil срез очищает набор тегов.
type PostUpdate struct {
	Title       *string `validate:"omitempty,min=3,max=255"`
	Description *string `validate:"omitempty,min=10,max=2000"`
	IsPrivate   *bool
	Tags        []string `validate:"omitempty,max=10,dive,min=2,max=50,tagname"`
}

// IsEmpty сообщает, что обновление не затрагивает ни одного поля
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.IsPrivate == nil && u.Tags == nil
}

// PostFilter задает условия выборки постов
type PostFilter struct {
	RequesterID int32
	OnlyOwn     bool
	Tags        []string
}

// PostPage - страница списка постов
type PostPage struct {
	Posts      []*Post
	TotalCount int32
	TotalPages int32
}
