package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Определения ошибок репозитория
var (
	ErrNotFound                   = errors.New("пост не найден")
	ErrDatabaseConnectionRequired = errors.New("требуется соединение с базой данных")
)

// SQLSTATE нарушения внешнего ключа
const foreignKeyViolation = "23503"

// isForeignKeyViolation распознает ошибку внешнего ключа для обоих поддерживаемых драйверов.
// Возникает, когда пост удален между проверкой существования и записью взаимодействия.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == foreignKeyViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return false
}
