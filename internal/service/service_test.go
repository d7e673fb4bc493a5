package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/domain"
	"socialfeed/internal/repository"
	"socialfeed/internal/repository/sqlite"
)

// ============================================================================
// Test Helpers
// ============================================================================

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func newTestService(t *testing.T, store repository.Store, opts ...PostOption) *PostService {
	t.Helper()
	opts = append([]PostOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewPostService(store, NewEventBus(), opts...)
}

func seedUser(t *testing.T, store repository.Store) *domain.User {
	t.Helper()
	users := NewUserService(store, nil, nil)
	user, err := users.CreateUser(context.Background(), &domain.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		IsActive:  true,
	})
	require.NoError(t, err)
	return user
}

// seedPosts writes posts for userID directly, bypassing the rule engine
func seedPosts(t *testing.T, store repository.Store, userID int64, createdAt ...time.Time) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback()

	for i, at := range createdAt {
		post := &domain.Post{UserID: userID, Description: fmt.Sprintf("seeded post number %d", i), CreatedAt: at}
		require.NoError(t, uow.Posts().Add(ctx, post))
	}
	require.NoError(t, uow.Commit(ctx))
}

func daysAgo(n int) time.Time {
	return fixedNow.Add(-time.Duration(n) * 24 * time.Hour)
}

// failingCommitStore hands out units of work whose Commit always fails
type failingCommitStore struct {
	repository.Store
}

func (s failingCommitStore) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	uow, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return failingCommitUnit{uow}, nil
}

type failingCommitUnit struct {
	repository.UnitOfWork
}

func (failingCommitUnit) Commit(context.Context) error {
	return domain.NewStorageError("commit", errors.New("disk I/O error"))
}

// ============================================================================
// InsertPost
// ============================================================================

func TestInsertPostFirstPostSucceeds(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	post, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "hello world from ada", "cover.png"))
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.True(t, fixedNow.Equal(post.CreatedAt))

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world from ada", got.Description)
	assert.Equal(t, "cover.png", got.Image)
	assert.Equal(t, user.ID, got.UserID)
}

func TestInsertPostUnknownAuthor(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)

	_, err := svc.InsertPost(context.Background(), domain.NewPost(99, "nobody wrote this one", ""))
	require.Error(t, err)
	assert.True(t, domain.IsRuleViolation(err))
	assert.Equal(t, "author does not exist", err.Error())
}

func TestInsertPostCooldown(t *testing.T) {
	tests := []struct {
		name    string
		history []time.Time
		wantErr string
	}{
		{
			name:    "one post a day ago",
			history: []time.Time{daysAgo(1)},
			wantErr: "you are not able to publish the post, you will have to wait 6 days",
		},
		{
			name:    "six posts, last a day ago",
			history: []time.Time{daysAgo(30), daysAgo(20), daysAgo(10), daysAgo(5), daysAgo(3), daysAgo(1)},
			wantErr: "you are not able to publish the post, you will have to wait 1 day",
		},
		{
			name:    "last post outside the window",
			history: []time.Time{daysAgo(8)},
		},
		{
			name:    "exactly at the window edge",
			history: []time.Time{daysAgo(7)},
		},
		{
			name: "ten posts skip the rule",
			history: []time.Time{
				daysAgo(10), daysAgo(9), daysAgo(8), daysAgo(7), daysAgo(6),
				daysAgo(5), daysAgo(4), daysAgo(3), daysAgo(2), daysAgo(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			svc := newTestService(t, store)
			user := seedUser(t, store)
			seedPosts(t, store, user.ID, tt.history...)

			_, err := svc.InsertPost(context.Background(), domain.NewPost(user.ID, "another thoughtful post", ""))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsRuleViolation(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestInsertPostCooldownWaitGoesNegative(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	seedPosts(t, store, user.ID,
		daysAgo(9), daysAgo(8), daysAgo(7), daysAgo(6), daysAgo(5), daysAgo(4), daysAgo(3), daysAgo(2), daysAgo(1))

	_, err := svc.InsertPost(context.Background(), domain.NewPost(user.ID, "another thoughtful post", ""))
	require.Error(t, err)
	assert.Equal(t, "you are not able to publish the post, you will have to wait -2 day", err.Error())
}

func TestInsertPostBannedContent(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	_, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "All about Sex education", ""))
	require.Error(t, err)
	assert.True(t, domain.IsRuleViolation(err))
	assert.Equal(t, "content not allowed", err.Error())

	// Matching is case-sensitive
	_, err = svc.InsertPost(ctx, domain.NewPost(user.ID, "all about sex education", ""))
	assert.NoError(t, err)
}

func TestInsertPostBannedContentOutsideCooldown(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	seedPosts(t, store, user.ID, daysAgo(30))

	_, err := svc.InsertPost(context.Background(), domain.NewPost(user.ID, "Sex sells, they say", ""))
	require.Error(t, err)
	assert.Equal(t, "content not allowed", err.Error())
}

func TestInsertPostCustomPolicy(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store, WithPolicy(PublicationPolicy{
		MaxPosts:     3,
		CooldownDays: 2,
		BannedTerms:  []string{"spam"},
	}))
	user := seedUser(t, store)
	seedPosts(t, store, user.ID, daysAgo(1))

	_, err := svc.InsertPost(context.Background(), domain.NewPost(user.ID, "a perfectly normal post", ""))
	require.Error(t, err)
	assert.Equal(t, "you are not able to publish the post, you will have to wait 1 day", err.Error())
}

func TestInsertPostRejectionLeavesNoState(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	_, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "Sex is banned here", ""))
	require.Error(t, err)

	page, err := svc.GetPosts(ctx, domain.PostQueryFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestInsertPostCommitFailureIsAtomic(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	ctx := context.Background()

	failing := newTestService(t, failingCommitStore{store})
	_, err := failing.InsertPost(ctx, domain.NewPost(user.ID, "doomed to never land", ""))
	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))

	page, err := newTestService(t, store).GetPosts(ctx, domain.PostQueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalCount)
}

func TestInsertPostPublishesEvent(t *testing.T) {
	store := newTestStore(t)
	bus := NewEventBus()
	events := make(chan Event, 1)
	bus.Subscribe(events)
	svc := NewPostService(store, bus, WithClock(func() time.Time { return fixedNow }))
	user := seedUser(t, store)

	post, err := svc.InsertPost(context.Background(), domain.NewPost(user.ID, "announce this post", ""))
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, EventPostCreated, ev.Type)
		assert.Equal(t, map[string]int64{"post_id": post.ID, "user_id": user.ID}, ev.Payload)
	default:
		t.Fatal("expected post_created event")
	}
}

// ============================================================================
// Reads
// ============================================================================

func TestGetPostsFiltersAndPaginates(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	ada := seedUser(t, store)
	ctx := context.Background()

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	bob := &domain.User{FirstName: "Bob", LastName: "Builder", Email: "bob@example.com"}
	require.NoError(t, uow.Users().Add(ctx, bob))
	require.NoError(t, uow.Commit(ctx))

	for i := 0; i < 25; i++ {
		seedPosts(t, store, ada.ID, daysAgo(i%3))
	}
	seedPosts(t, store, bob.ID, daysAgo(0))

	page, err := svc.GetPosts(ctx, domain.PostQueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 26, page.TotalCount)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 3, page.TotalPages)

	page, err = svc.GetPosts(ctx, domain.PostQueryFilter{UserID: &ada.ID, PageNumber: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, page.TotalCount)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)

	date := daysAgo(1)
	page, err = svc.GetPosts(ctx, domain.PostQueryFilter{Date: &date, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 8, page.TotalCount)

	desc := "SEEDED POST NUMBER"
	page, err = svc.GetPosts(ctx, domain.PostQueryFilter{Description: &desc, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 26, page.TotalCount)
}

func TestGetPostsIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	seedPosts(t, store, user.ID, daysAgo(3), daysAgo(2), daysAgo(1))
	ctx := context.Background()

	filter := domain.PostQueryFilter{PageNumber: 1, PageSize: 2}
	first, err := svc.GetPosts(ctx, filter)
	require.NoError(t, err)
	second, err := svc.GetPosts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetPostsRejectsBadPage(t *testing.T) {
	svc := newTestService(t, newTestStore(t))

	_, err := svc.GetPosts(context.Background(), domain.PostQueryFilter{PageNumber: -1})
	assert.Error(t, err)
}

func TestGetPostNotFound(t *testing.T) {
	svc := newTestService(t, newTestStore(t))

	_, err := svc.GetPost(context.Background(), 7)
	assert.True(t, domain.IsNotFound(err))
}

// ============================================================================
// Update / Delete
// ============================================================================

func TestUpdatePost(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	post, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "original description", "a.png"))
	require.NoError(t, err)

	ok, err := svc.UpdatePost(ctx, &domain.Post{ID: post.ID, UserID: 12345, Description: "edited description", Image: "b.png"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited description", got.Description)
	assert.Equal(t, "b.png", got.Image)
	assert.Equal(t, user.ID, got.UserID, "author is immutable")
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
}

func TestUpdatePostNotFoundLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	seedPosts(t, store, user.ID, daysAgo(30))
	ctx := context.Background()

	before, err := svc.GetPosts(ctx, domain.PostQueryFilter{})
	require.NoError(t, err)

	ok, err := svc.UpdatePost(ctx, &domain.Post{ID: 999, Description: "does not matter at all"})
	assert.False(t, ok)
	assert.True(t, domain.IsNotFound(err))

	after, err := svc.GetPosts(ctx, domain.PostQueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeletePost(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	post, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "short lived post", ""))
	require.NoError(t, err)

	ok, err := svc.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.GetPost(ctx, post.ID)
	assert.True(t, domain.IsNotFound(err))

	ok, err = svc.DeletePost(ctx, post.ID)
	assert.False(t, ok)
	assert.True(t, domain.IsNotFound(err))
}

// ============================================================================
// Comments
// ============================================================================

func TestComments(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	user := seedUser(t, store)
	ctx := context.Background()

	post, err := svc.InsertPost(ctx, domain.NewPost(user.ID, "post worth replying to", ""))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.AddComment(ctx, &domain.Comment{PostID: post.ID, UserID: user.ID, Description: fmt.Sprintf("reply %d", i)})
		require.NoError(t, err)
	}

	page, err := svc.GetComments(ctx, post.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "reply 0", page.Items[0].Description)
	assert.True(t, page.Items[0].IsActive)

	_, err = svc.GetComments(ctx, 999, 0, 0)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.AddComment(ctx, &domain.Comment{PostID: post.ID, UserID: user.ID, Description: "   "})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.AddComment(ctx, &domain.Comment{PostID: post.ID, UserID: 404, Description: "ghost reply"})
	assert.True(t, domain.IsRuleViolation(err))
}

// ============================================================================
// Users
// ============================================================================

func TestUserService(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, NewEventBus(), nil)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &domain.User{FirstName: " Alan ", LastName: "Turing", Email: "alan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alan", user.FirstName)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", got.FullName())

	page, err := svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	_, err = svc.GetUser(ctx, 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestUserServicePageDefaults(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store, nil, nil, WithUserPageDefaults(PageDefaults{PageNumber: 1, PageSize: 2}))
	ctx := context.Background()

	for _, name := range []string{"Ada", "Alan", "Grace"} {
		_, err := svc.CreateUser(ctx, &domain.User{FirstName: name, LastName: "X", Email: "u@example.com"})
		require.NoError(t, err)
	}

	page, err := svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageSize)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Grace", page.Items[0].FirstName)
}

func TestUserServiceValidation(t *testing.T) {
	svc := NewUserService(newTestStore(t), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		user  domain.User
		field string
	}{
		{"missing first name", domain.User{LastName: "X", Email: "x@example.com"}, "firstName"},
		{"missing email", domain.User{FirstName: "X", LastName: "Y"}, "email"},
		{"long email", domain.User{FirstName: "X", LastName: "Y", Email: "a-very-long-address@example-domain.com"}, "email"},
		{"long telephone", domain.User{FirstName: "X", LastName: "Y", Email: "x@example.com", Telephone: "+1234567890123"}, "telephone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, &tt.user)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
