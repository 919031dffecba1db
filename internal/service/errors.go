package service

import (
	"errors"
	"strings"
)

// Определения ошибок сервисного слоя
var (
	ErrNotFound  = errors.New("пост не найден")
	ErrForbidden = errors.New("доступ запрещен")
)

// FieldError описывает нарушение правила для одного поля запроса
type FieldError struct {
	Field   string
	Message string
}

// ValidationError возвращается, когда запрос не прошел проверку
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		parts[i] = field.Field + ": " + field.Message
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}
