package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialfeed/internal/domain"
)

// lookupError maps a First() error onto the domain taxonomy
func lookupError(err error, resource string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(resource, id)
	}
	return domain.NewStorageError("get "+resource, err)
}

// expectOneRow reports NotFound when a keyed write touched nothing
func expectOneRow(res *gorm.DB, op, resource string, id int64) error {
	if res.Error != nil {
		return domain.NewStorageError(op+" "+resource, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound(resource, id)
	}
	return nil
}

// ============================================================================
// Posts
// ============================================================================

type postRepository struct {
	tx *gorm.DB
}

func (r *postRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*domain.Post, error) {
	var rows []postModel
	if err := scope(r.tx.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	posts := make([]*domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toDomain())
	}
	return posts, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]*domain.Post, error) {
	return r.find(ctx, "list posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *postRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	return r.find(ctx, "list posts by user", func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at").Order("id")
	})
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var row postModel
	if err := r.tx.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, lookupError(err, "post", id)
	}
	return row.toDomain(), nil
}

func (r *postRepository) Add(ctx context.Context, post *domain.Post) error {
	row := toPostModel(post)
	row.ID = 0
	if err := r.tx.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return domain.NewStorageError("insert post", err)
	}
	post.ID = row.ID
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	row := toPostModel(post)
	res := r.tx.WithContext(ctx).
		Model(&postModel{ID: post.ID}).
		Select("user_id", "description", "image", "created_at").
		Updates(&row)
	return expectOneRow(res, "update", "post", post.ID)
}

// Delete removes the post and its comments. The comments go first so the
// result does not depend on the dialect having created the cascading key.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	db := r.tx.WithContext(ctx)
	if err := db.Where("post_id = ?", id).Delete(&commentModel{}).Error; err != nil {
		return domain.NewStorageError("delete post comments", err)
	}
	res := db.Delete(&postModel{}, id)
	return expectOneRow(res, "delete", "post", id)
}

// ============================================================================
// Users
// ============================================================================

type userRepository struct {
	tx *gorm.DB
}

func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	var rows []userModel
	if err := r.tx.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, domain.NewStorageError("list users", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userModel
	if err := r.tx.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, lookupError(err, "user", id)
	}
	return row.toDomain(), nil
}

func (r *userRepository) Add(ctx context.Context, user *domain.User) error {
	row := toUserModel(user)
	row.ID = 0
	if err := r.tx.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return domain.NewStorageError("insert user", err)
	}
	user.ID = row.ID
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	row := toUserModel(user)
	res := r.tx.WithContext(ctx).
		Model(&userModel{ID: user.ID}).
		Select("first_name", "last_name", "email", "date_of_birth", "telephone", "is_active").
		Updates(&row)
	return expectOneRow(res, "update", "user", user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res := r.tx.WithContext(ctx).Delete(&userModel{}, id)
	return expectOneRow(res, "delete", "user", id)
}

// ============================================================================
// Comments
// ============================================================================

type commentRepository struct {
	tx *gorm.DB
}

func (r *commentRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*domain.Comment, error) {
	var rows []commentModel
	if err := scope(r.tx.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	comments := make([]*domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toDomain())
	}
	return comments, nil
}

func (r *commentRepository) GetAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.find(ctx, "list comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *commentRepository) GetByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	return r.find(ctx, "list comments by post", func(db *gorm.DB) *gorm.DB {
		return db.Where("post_id = ?", postID).Order("id")
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var row commentModel
	if err := r.tx.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, lookupError(err, "comment", id)
	}
	return row.toDomain(), nil
}

func (r *commentRepository) Add(ctx context.Context, comment *domain.Comment) error {
	row := toCommentModel(comment)
	row.ID = 0
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.NewStorageError("insert comment", err)
	}
	comment.ID = row.ID
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	row := toCommentModel(comment)
	res := r.tx.WithContext(ctx).
		Model(&commentModel{ID: comment.ID}).
		Select("post_id", "user_id", "description", "created_at", "is_active").
		Updates(&row)
	return expectOneRow(res, "update", "comment", comment.ID)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res := r.tx.WithContext(ctx).Delete(&commentModel{}, id)
	return expectOneRow(res, "delete", "comment", id)
}
