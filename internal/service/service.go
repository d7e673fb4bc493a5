package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/pagination"
	"socialfeed/internal/repository"
)

// PostService provides business logic for posts
type PostService struct {
	store    repository.Store
	eventBus *EventBus
	log      logrus.FieldLogger
	policy   PublicationPolicy
	pages    PageDefaults
	now      func() time.Time
}

// PostOption customizes a PostService
type PostOption func(*PostService)

// WithPolicy replaces the default publication rules
func WithPolicy(p PublicationPolicy) PostOption {
	return func(s *PostService) { s.policy = p }
}

// WithPageDefaults replaces the default page number and size
func WithPageDefaults(d PageDefaults) PostOption {
	return func(s *PostService) { s.pages = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) PostOption {
	return func(s *PostService) { s.now = now }
}

// WithLogger sets the service logger
func WithLogger(log logrus.FieldLogger) PostOption {
	return func(s *PostService) { s.log = log }
}

// NewPostService creates a new post service
func NewPostService(store repository.Store, eventBus *EventBus, opts ...PostOption) *PostService {
	s := &PostService{
		store:    store,
		eventBus: eventBus,
		log:      discardLogger(),
		policy:   DefaultPublicationPolicy(),
		pages:    DefaultPageDefaults(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("service", "posts")
	return s
}

// GetPosts returns one page of the posts matching filter, in identifier order
func (s *PostService) GetPosts(ctx context.Context, filter domain.PostQueryFilter) (*pagination.PagedList[*domain.Post], error) {
	pageNumber, pageSize := s.pages.resolve(filter.PageNumber, filter.PageSize)

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	posts, err := uow.Posts().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	return pagination.Paginate(matched, pageNumber, pageSize)
}

// GetPost retrieves a single post by ID
func (s *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Posts().GetByID(ctx, id)
}

// InsertPost runs the publication rules and persists the post.
//
// Rules are evaluated in order: the author must exist, the author must not be
// inside the posting cooldown, and the description must not contain a banned
// term. A rejection returns *domain.RuleViolationError; a commit failure
// returns *domain.StorageError. On success post carries its new ID and
// creation time.
func (s *PostService) InsertPost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	log := s.log.WithField("user_id", post.UserID)

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := uow.Users().GetByID(ctx, post.UserID); err != nil {
		if domain.IsNotFound(err) {
			log.Info("post rejected: unknown author")
			return nil, domain.NewRuleViolation("author does not exist")
		}
		return nil, err
	}

	now := s.now().UTC()

	history, err := uow.Posts().GetByUser(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCooldown(history, now); err != nil {
		log.WithField("existing_posts", len(history)).Info("post rejected: cooldown")
		return nil, err
	}

	if err := s.checkContent(post.Description); err != nil {
		log.Info("post rejected: banned content")
		return nil, err
	}

	post.ID = 0
	post.CreatedAt = now
	if err := uow.Posts().Add(ctx, post); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		log.WithError(err).Error("post insert failed")
		return nil, err
	}

	log.WithField("post_id", post.ID).Info("post published")
	s.eventBus.Publish(Event{
		Type:    EventPostCreated,
		Payload: map[string]int64{"post_id": post.ID, "user_id": post.UserID},
	})

	return post, nil
}

// checkCooldown applies the posting cooldown. history is ordered by creation
// time ascending. Authors with no posts, or with MaxPosts or more, skip it.
// The wait reported is CooldownDays minus the existing post count.
func (s *PostService) checkCooldown(history []*domain.Post, now time.Time) error {
	count := len(history)
	if count == 0 || count >= s.policy.MaxPosts {
		return nil
	}

	last := history[count-1]
	if now.Sub(last.CreatedAt) >= s.policy.cooldown() {
		return nil
	}

	daysToWait := s.policy.CooldownDays - count
	unit := "day"
	if daysToWait > 1 {
		unit = "days"
	}
	return domain.NewRuleViolation("you are not able to publish the post, you will have to wait %d %s", daysToWait, unit)
}

func (s *PostService) checkContent(description string) error {
	for _, term := range s.policy.BannedTerms {
		if term != "" && strings.Contains(description, term) {
			return domain.NewRuleViolation("content not allowed")
		}
	}
	return nil
}

// UpdatePost replaces the description and image of an existing post.
// Identifier, author and creation time are immutable.
func (s *PostService) UpdatePost(ctx context.Context, post *domain.Post) (bool, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	existing, err := uow.Posts().GetByID(ctx, post.ID)
	if err != nil {
		return false, err
	}

	existing.Description = post.Description
	existing.Image = post.Image

	if err := uow.Posts().Update(ctx, existing); err != nil {
		return false, err
	}
	if err := uow.Commit(ctx); err != nil {
		return false, err
	}

	s.eventBus.Publish(Event{
		Type:    EventPostUpdated,
		Payload: map[string]int64{"post_id": existing.ID},
	})

	return true, nil
}

// DeletePost removes a post and its comments
func (s *PostService) DeletePost(ctx context.Context, id int64) (bool, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	if err := uow.Posts().Delete(ctx, id); err != nil {
		return false, err
	}
	if err := uow.Commit(ctx); err != nil {
		return false, err
	}

	s.log.WithField("post_id", id).Info("post deleted")
	s.eventBus.Publish(Event{
		Type:    EventPostDeleted,
		Payload: map[string]int64{"post_id": id},
	})

	return true, nil
}

// GetComments returns one page of a post's comments
func (s *PostService) GetComments(ctx context.Context, postID int64, pageNumber, pageSize int) (*pagination.PagedList[*domain.Comment], error) {
	pageNumber, pageSize = s.pages.resolve(pageNumber, pageSize)

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := uow.Posts().GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := uow.Comments().GetByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(comments, pageNumber, pageSize)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// AddComment attaches a comment to an existing post. Both the post and the
// commenting user must exist.
func (s *PostService) AddComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := uow.Posts().GetByID(ctx, comment.PostID); err != nil {
		return nil, err
	}
	if _, err := uow.Users().GetByID(ctx, comment.UserID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewRuleViolation("author does not exist")
		}
		return nil, err
	}

	comment.ID = 0
	comment.CreatedAt = s.now().UTC()
	comment.IsActive = true
	if err := uow.Comments().Add(ctx, comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return comment, nil
}

func validateComment(c *domain.Comment) error {
	desc := strings.TrimSpace(c.Description)
	if desc == "" {
		return &domain.ValidationError{Field: "description", Message: "is required"}
	}
	if len([]rune(c.Description)) > domain.CommentDescriptionMaxLen {
		return &domain.ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", domain.CommentDescriptionMaxLen)}
	}
	return nil
}
