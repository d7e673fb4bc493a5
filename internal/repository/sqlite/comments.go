package sqlite

import (
	"context"
	"database/sql"

	"socialfeed/internal/domain"
)

const commentColumns = `id, post_id, user_id, description, created_at, is_active`

type commentRepository struct {
	tx *sql.Tx
}

func scanComment(row scanner) (*domain.Comment, error) {
	var (
		c         domain.Comment
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Description, &createdAt, &c.IsActive); err != nil {
		return nil, err
	}

	created, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = created
	return &c, nil
}

func (r *commentRepository) list(ctx context.Context, op, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return comments, nil
}

// GetAll returns every comment ordered by ID
func (r *commentRepository) GetAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.list(ctx, "list comments", `SELECT `+commentColumns+` FROM comments ORDER BY id`)
}

// GetByPost returns the comments of one post ordered by ID
func (r *commentRepository) GetByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	return r.list(ctx, "list comments by post",
		`SELECT `+commentColumns+` FROM comments WHERE post_id = ? ORDER BY id`, postID)
}

// GetByID retrieves a single comment
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.tx.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		return nil, lookupError(err, "comment", id)
	}
	return c, nil
}

// Add inserts a comment and assigns its ID
func (r *commentRepository) Add(ctx context.Context, comment *domain.Comment) error {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO comments (post_id, user_id, description, created_at, is_active)
		VALUES (?, ?, ?, ?, ?)
	`, comment.PostID, comment.UserID, comment.Description, formatTimestamp(comment.CreatedAt), comment.IsActive)
	if err != nil {
		return domain.NewStorageError("insert comment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert comment", err)
	}
	comment.ID = id
	return nil
}

// Update replaces every column of the comment
func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE comments SET post_id = ?, user_id = ?, description = ?, created_at = ?, is_active = ?
		WHERE id = ?
	`, comment.PostID, comment.UserID, comment.Description, formatTimestamp(comment.CreatedAt),
		comment.IsActive, comment.ID)
	if err != nil {
		return domain.NewStorageError("update comment", err)
	}
	return expectOneRow(res, "update", "comment", comment.ID)
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete comment", err)
	}
	return expectOneRow(res, "delete", "comment", id)
}
