package sqlite

import (
	"context"
	"database/sql"

	"socialfeed/internal/domain"
)

const userColumns = `id, first_name, last_name, email, date_of_birth, telephone, is_active`

type userRepository struct {
	tx *sql.Tx
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		u         domain.User
		birth     sql.NullString
		telephone sql.NullString
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &birth, &telephone, &u.IsActive); err != nil {
		return nil, err
	}

	dob, err := nullToDate(birth)
	if err != nil {
		return nil, err
	}
	u.DateOfBirth = dob
	u.Telephone = nullToString(telephone)
	return &u, nil
}

// GetAll returns every user ordered by ID
func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.tx.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, domain.NewStorageError("list users", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.NewStorageError("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list users", err)
	}
	return users, nil
}

// GetByID retrieves a single user
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, lookupError(err, "user", id)
	}
	return u, nil
}

// Add inserts a user and assigns its ID
func (r *userRepository) Add(ctx context.Context, user *domain.User) error {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, date_of_birth, telephone, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.FirstName, user.LastName, user.Email, dateToNull(user.DateOfBirth),
		stringToNull(user.Telephone), user.IsActive)
	if err != nil {
		return domain.NewStorageError("insert user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert user", err)
	}
	user.ID = id
	return nil
}

// Update replaces every column of the user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, email = ?, date_of_birth = ?, telephone = ?, is_active = ?
		WHERE id = ?
	`, user.FirstName, user.LastName, user.Email, dateToNull(user.DateOfBirth),
		stringToNull(user.Telephone), user.IsActive, user.ID)
	if err != nil {
		return domain.NewStorageError("update user", err)
	}
	return expectOneRow(res, "update", "user", user.ID)
}

// Delete removes a user. Users that still own posts are protected by the foreign key.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete user", err)
	}
	return expectOneRow(res, "delete", "user", id)
}
