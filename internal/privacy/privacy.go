// Package privacy решает, может ли пользователь видеть пост и взаимодействовать с ним.
package privacy

import "github.com/levalimpiev/post-interactions/internal/models"

// CanView возвращает true, если пост публичный или запрашивающий является его создателем
func CanView(post *models.Post, requesterID int32) bool {
	return !post.IsPrivate || post.CreatorID == requesterID
}
