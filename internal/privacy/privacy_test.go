package privacy

import (
	"testing"

	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name      string
		isPrivate bool
		creatorID int32
		requester int32
		want      bool
	}{
		{"публичный пост, чужой пользователь", false, 1, 2, true},
		{"публичный пост, создатель", false, 1, 1, true},
		{"публичный пост, аноним", false, 1, 0, true},
		{"приватный пост, создатель", true, 1, 1, true},
		{"приватный пост, чужой пользователь", true, 1, 2, false},
		{"приватный пост, аноним", true, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{ID: 10, CreatorID: tt.creatorID, IsPrivate: tt.isPrivate}
			assert.Equal(t, tt.want, CanView(post, tt.requester))
		})
	}
}
