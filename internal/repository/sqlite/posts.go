package sqlite

import (
	"context"
	"database/sql"

	"socialfeed/internal/domain"
)

const postColumns = `id, user_id, description, image, created_at`

type postRepository struct {
	tx *sql.Tx
}

func scanPost(row scanner) (*domain.Post, error) {
	var (
		p         domain.Post
		image     sql.NullString
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Description, &image, &createdAt); err != nil {
		return nil, err
	}

	created, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	p.Image = nullToString(image)
	p.CreatedAt = created
	return &p, nil
}

func (r *postRepository) list(ctx context.Context, op, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return posts, nil
}

// GetAll returns every post ordered by ID
func (r *postRepository) GetAll(ctx context.Context) ([]*domain.Post, error) {
	return r.list(ctx, "list posts", `SELECT `+postColumns+` FROM posts ORDER BY id`)
}

// GetByUser returns the author's posts, oldest first
func (r *postRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	return r.list(ctx, "list posts by user",
		`SELECT `+postColumns+` FROM posts WHERE user_id = ? ORDER BY created_at, id`, userID)
}

// GetByID retrieves a single post
func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.tx.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, lookupError(err, "post", id)
	}
	return p, nil
}

// Add inserts a post and assigns its ID
func (r *postRepository) Add(ctx context.Context, post *domain.Post) error {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO posts (user_id, description, image, created_at)
		VALUES (?, ?, ?, ?)
	`, post.UserID, post.Description, stringToNull(post.Image), formatTimestamp(post.CreatedAt))
	if err != nil {
		return domain.NewStorageError("insert post", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert post", err)
	}
	post.ID = id
	return nil
}

// Update replaces every column of the post
func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE posts SET user_id = ?, description = ?, image = ?, created_at = ?
		WHERE id = ?
	`, post.UserID, post.Description, stringToNull(post.Image), formatTimestamp(post.CreatedAt), post.ID)
	if err != nil {
		return domain.NewStorageError("update post", err)
	}
	return expectOneRow(res, "update", "post", post.ID)
}

// Delete removes a post; its comments go with it
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete post", err)
	}
	return expectOneRow(res, "delete", "post", id)
}
