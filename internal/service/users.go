package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/pagination"
	"socialfeed/internal/repository"
)

// UserService manages feed members
type UserService struct {
	store    repository.Store
	eventBus *EventBus
	log      logrus.FieldLogger
	pages    PageDefaults
}

// UserOption configures a UserService
type UserOption func(*UserService)

// WithUserPageDefaults replaces the default page number and size of ListUsers
func WithUserPageDefaults(d PageDefaults) UserOption {
	return func(s *UserService) { s.pages = d }
}

// NewUserService creates a new user service. A nil logger discards output.
func NewUserService(store repository.Store, eventBus *EventBus, log logrus.FieldLogger, opts ...UserOption) *UserService {
	if log == nil {
		log = discardLogger()
	}
	s := &UserService{
		store:    store,
		eventBus: eventBus,
		log:      log.WithField("service", "users"),
		pages:    DefaultPageDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns one page of users in identifier order. Zero values use the defaults.
func (s *UserService) ListUsers(ctx context.Context, pageNumber, pageSize int) (*pagination.PagedList[*domain.User], error) {
	pageNumber, pageSize = s.pages.resolve(pageNumber, pageSize)

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	users, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(users, pageNumber, pageSize)
}

// GetUser retrieves a single user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Users().GetByID(ctx, id)
}

// CreateUser validates and stores a new user
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validateUser(user); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user.ID = 0
	if err := uow.Users().Add(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user created")
	s.eventBus.Publish(Event{
		Type:    EventUserCreated,
		Payload: map[string]int64{"user_id": user.ID},
	})

	return user, nil
}

func (s *UserService) validateUser(u *domain.User) error {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)

	checks := []struct {
		field string
		value string
		max   int
		req   bool
	}{
		{"firstName", u.FirstName, domain.UserNameMaxLen, true},
		{"lastName", u.LastName, domain.UserNameMaxLen, true},
		{"email", u.Email, domain.UserEmailMaxLen, true},
		{"telephone", u.Telephone, domain.UserTelephoneMaxLen, false},
	}
	for _, c := range checks {
		if c.req && c.value == "" {
			return &domain.ValidationError{Field: c.field, Message: "is required"}
		}
		if len([]rune(c.value)) > c.max {
			return &domain.ValidationError{Field: c.field, Message: fmt.Sprintf("must be at most %d characters", c.max)}
		}
	}

	return nil
}
