package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/levalimpiev/post-interactions/internal/models"
	"github.com/levalimpiev/post-interactions/internal/pagination"
)

// querier - общая часть *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const postColumns = "p.id, p.creator_id, p.title, p.description, p.is_private, p.created_at, p.updated_at"

// PostgresRepository реализация хранилища в PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository создает новый репозиторий постов в PostgreSQL
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ping проверяет доступность базы данных
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreatePost создает пост и связывает его с тегами в одной транзакции
func (r *PostgresRepository) CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   in.CreatorID,
		IsPrivate:   in.IsPrivate,
	}

	// created_at и updated_at берутся из NOW() одной транзакции и поэтому совпадают
	err = tx.QueryRowContext(ctx,
		`INSERT INTO posts (creator_id, title, description, is_private)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		in.CreatorID, in.Title, in.Description, in.IsPrivate,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании поста: %w", err)
	}

	tags, err := resolveTags(ctx, tx, in.Tags)
	if err != nil {
		return nil, err
	}
	if err := attachTags(ctx, tx, post.ID, tags); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	post.Tags = tags
	return post, nil
}

// GetPost получает пост по ID вместе с тегами
func (r *PostgresRepository) GetPost(ctx context.Context, postID int32) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts p WHERE p.id = $1",
		postID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	tagsByPost, err := loadTags(ctx, r.db, []int32{post.ID})
	if err != nil {
		return nil, err
	}
	post.Tags = tagsByPost[post.ID]
	return post, nil
}

// ListPosts возвращает страницу постов, от новых к старым, и общее количество подходящих постов
func (r *PostgresRepository) ListPosts(ctx context.Context, filter models.PostFilter, page pagination.Params) ([]*models.Post, int32, error) {
	args := []any{filter.RequesterID}
	argIndex := 2

	// Свои посты видны всегда, чужие - только публичные
	var conditions []string
	if filter.OnlyOwn {
		conditions = append(conditions, "p.creator_id = $1")
	} else {
		conditions = append(conditions, "(NOT p.is_private OR p.creator_id = $1)")
	}

	// Фильтр по тегам: достаточно совпадения хотя бы одного тега
	if len(filter.Tags) > 0 {
		placeholders := make([]string, len(filter.Tags))
		for i, tag := range filter.Tags {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, tag)
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
             WHERE pt.post_id = p.id AND t.name IN (%s))`,
			strings.Join(placeholders, ", "),
		))
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int32
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts p WHERE "+where, args...).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете постов: %w", err)
	}

	// Если нет постов, возвращаем пустой массив
	if totalCount == 0 {
		return []*models.Post{}, 0, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM posts p WHERE %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d",
		postColumns, where, argIndex, argIndex+1,
	)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении постов: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	var postIDs []int32
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка при сканировании поста: %w", err)
		}
		posts = append(posts, post)
		postIDs = append(postIDs, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при чтении постов: %w", err)
	}

	if len(postIDs) == 0 {
		return posts, totalCount, nil
	}

	tagsByPost, err := loadTags(ctx, r.db, postIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, post := range posts {
		post.Tags = tagsByPost[post.ID]
	}

	return posts, totalCount, nil
}

// UpdatePost применяет только переданные поля. Переданный набор тегов
// полностью заменяет текущий.
func (r *PostgresRepository) UpdatePost(ctx context.Context, postID int32, update models.PostUpdate) (*models.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	// Подготавливаем SQL запрос для обновления
	setStatements := []string{"updated_at = NOW()"}
	args := []any{}
	argIndex := 1

	if update.Title != nil {
		setStatements = append(setStatements, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *update.Title)
		argIndex++
	}

	if update.Description != nil {
		setStatements = append(setStatements, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *update.Description)
		argIndex++
	}

	if update.IsPrivate != nil {
		setStatements = append(setStatements, fmt.Sprintf("is_private = $%d", argIndex))
		args = append(args, *update.IsPrivate)
		argIndex++
	}

	args = append(args, postID)
	query := fmt.Sprintf(
		"UPDATE posts p SET %s WHERE p.id = $%d RETURNING %s",
		strings.Join(setStatements, ", "), argIndex, postColumns,
	)

	post, err := scanPost(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	if update.Tags != nil {
		// Сначала удаляем все существующие связи, затем добавляем новые
		if _, err := tx.ExecContext(ctx, "DELETE FROM post_tags WHERE post_id = $1", postID); err != nil {
			return nil, fmt.Errorf("ошибка при удалении старых тегов: %w", err)
		}
		tags, err := resolveTags(ctx, tx, update.Tags)
		if err != nil {
			return nil, err
		}
		if err := attachTags(ctx, tx, postID, tags); err != nil {
			return nil, err
		}
		post.Tags = tags
	} else {
		tagsByPost, err := loadTags(ctx, tx, []int32{postID})
		if err != nil {
			return nil, err
		}
		post.Tags = tagsByPost[postID]
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	return post, nil
}

// DeletePost удаляет пост. Теги, просмотры, лайки и комментарии удаляются через ON DELETE CASCADE,
// сами теги остаются.
func (r *PostgresRepository) DeletePost(ctx context.Context, postID int32) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordView регистрирует просмотр не более одного раза на пару (пост, пользователь)
func (r *PostgresRepository) RecordView(ctx context.Context, postID, userID int32) (bool, int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO post_views (post_id, user_id, viewed_at)
         VALUES ($1, $2, NOW())
         ON CONFLICT (post_id, user_id) DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, 0, ErrNotFound
		}
		return false, 0, fmt.Errorf("ошибка при регистрации просмотра: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при регистрации просмотра: %w", err)
	}

	count, err := countRows(ctx, tx, "SELECT COUNT(*) FROM post_views WHERE post_id = $1", postID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при подсчете просмотров: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return inserted > 0, count, nil
}

// ToggleLike снимает лайк, если он есть, иначе ставит его
func (r *PostgresRepository) ToggleLike(ctx context.Context, postID, userID int32) (bool, int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2",
		postID, userID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при удалении лайка: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	liked := false
	if removed == 0 {
		// Лайка не было, ставим его
		result, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id, liked_at)
             VALUES ($1, $2, NOW())
             ON CONFLICT (post_id, user_id) DO NOTHING`,
			postID, userID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return false, 0, ErrNotFound
			}
			return false, 0, fmt.Errorf("ошибка при добавлении лайка: %w", err)
		}
		inserted, err := result.RowsAffected()
		if err != nil {
			return false, 0, fmt.Errorf("ошибка при добавлении лайка: %w", err)
		}
		liked = inserted > 0
	}

	count, err := countRows(ctx, tx, "SELECT COUNT(*) FROM post_likes WHERE post_id = $1", postID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при подсчете лайков: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return liked, count, nil
}

// AddComment добавляет комментарий к посту
func (r *PostgresRepository) AddComment(ctx context.Context, postID, userID int32, text string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (post_id, user_id, text, created_at)
         VALUES ($1, $2, $3, NOW())
         RETURNING id, created_at`,
		postID, userID, text,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при добавлении комментария: %w", err)
	}

	return comment, nil
}

// ListComments возвращает комментарии к посту от старых к новым
func (r *PostgresRepository) ListComments(ctx context.Context, postID int32, page pagination.Params) ([]*models.Comment, int32, error) {
	totalCount, err := countRows(ctx, r.db, "SELECT COUNT(*) FROM comments WHERE post_id = $1", postID)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении количества комментариев: %w", err)
	}
	if totalCount == 0 {
		return []*models.Comment{}, 0, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, user_id, text, created_at
         FROM comments
         WHERE post_id = $1
         ORDER BY created_at ASC, id ASC
         LIMIT $2 OFFSET $3`,
		postID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка при обработке комментария: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при чтении комментариев: %w", err)
	}

	return comments, totalCount, nil
}

// resolveTags находит теги по именам, создавая недостающие.
// Повторяющиеся имена схлопываются, результат упорядочен по имени.
func resolveTags(ctx context.Context, q querier, names []string) ([]models.Tag, error) {
	unique := uniqueNames(names)
	tags := make([]models.Tag, 0, len(unique))
	for _, name := range unique {
		var tag models.Tag
		// DO UPDATE вместо DO NOTHING, чтобы RETURNING вернул id уже существующего тега
		err := q.QueryRowContext(ctx,
			`INSERT INTO tags (name) VALUES ($1)
             ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
             RETURNING id, name`,
			name,
		).Scan(&tag.ID, &tag.Name)
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении тега %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// attachTags связывает пост с тегами
func attachTags(ctx context.Context, q querier, postID int32, tags []models.Tag) error {
	for _, tag := range tags {
		_, err := q.ExecContext(ctx,
			"INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			postID, tag.ID,
		)
		if err != nil {
			return fmt.Errorf("ошибка при добавлении тега: %w", err)
		}
	}
	return nil
}

// loadTags получает теги для набора постов одним запросом
func loadTags(ctx context.Context, q querier, postIDs []int32) (map[int32][]models.Tag, error) {
	placeholders := make([]string, len(postIDs))
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf(
		`SELECT pt.post_id, t.id, t.name
         FROM post_tags pt
         JOIN tags t ON t.id = pt.tag_id
         WHERE pt.post_id IN (%s)
         ORDER BY t.name`,
		strings.Join(placeholders, ", "),
	), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}
	defer rows.Close()

	tagsByPost := make(map[int32][]models.Tag, len(postIDs))
	for _, id := range postIDs {
		tagsByPost[id] = []models.Tag{}
	}
	for rows.Next() {
		var postID int32
		var tag models.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании тега: %w", err)
		}
		tagsByPost[postID] = append(tagsByPost[postID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при чтении тегов: %w", err)
	}
	return tagsByPost, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.CreatorID,
		&post.Title,
		&post.Description,
		&post.IsPrivate,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func countRows(ctx context.Context, q querier, query string, args ...any) (int32, error) {
	var count int32
	err := q.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// uniqueNames убирает повторы и сортирует имена
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return unique
}
