package gormstore

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"socialfeed/internal/domain"
	"socialfeed/internal/repository"
)

type unitOfWork struct {
	tx       *gorm.DB
	log      logrus.FieldLogger
	done     bool
	posts    *postRepository
	users    *userRepository
	comments *commentRepository
}

func newUnitOfWork(tx *gorm.DB, log logrus.FieldLogger) *unitOfWork {
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

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return domain.NewStorageError("commit", sql.ErrTxDone)
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStorageError("commit", err)
	}

	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		u.log.WithError(err).Error("commit failed")
		return domain.NewStorageError("commit", err)
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true

	if err := u.tx.Rollback().Error; err != nil && err != sql.ErrTxDone {
		return domain.NewStorageError("rollback", err)
	}
	return nil
}
