package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/repository"
)

// unitOfWork binds the three repositories to one *sql.Tx
type unitOfWork struct {
	tx       *sql.Tx
	log      logrus.FieldLogger
	done     bool
	posts    *postRepository
	users    *userRepository
	comments *commentRepository
}

func newUnitOfWork(tx *sql.Tx, log logrus.FieldLogger) *unitOfWork {
	return &unitOfWork{
		tx:       tx,
		log:      log,
		posts:    &postRepository{tx: tx},
		users:    &userRepository{tx: tx},
		comments: &commentRepository{tx: tx},
	}
}

func (u *unitOfWork) Posts() repository.PostRepository       { return u.posts }
func (u *unitOfWork) Users() repository.UserRepository       { return u.users }
func (u *unitOfWork) Comments() repository.CommentRepository { return u.comments }

// Commit commits the transaction
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return domain.NewStorageError("commit", sql.ErrTxDone)
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("commit", err)
	}

	u.done = true
	if err := u.tx.Commit(); err != nil {
		u.log.WithError(err).Error("commit failed")
		return domain.NewStorageError("commit", err)
	}
	return nil
}

// Rollback discards the transaction if it is still open
func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true

	err := u.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return domain.NewStorageError("rollback", err)
	}
	return nil
}
