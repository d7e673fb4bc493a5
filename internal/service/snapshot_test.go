package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/codec"
	"socialfeed/internal/domain"
)

func TestExportSnapshot(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	seedPosts(t, store, user.ID, daysAgo(3), daysAgo(1))

	svc := newTestService(t, store)
	_, err := svc.AddComment(context.Background(), &domain.Comment{
		PostID:      1,
		UserID:      user.ID,
		Description: "a thoughtful reply",
	})
	require.NoError(t, err)

	snap, err := ExportSnapshot(context.Background(), store)
	require.NoError(t, err)

	require.Len(t, snap.Users, 1)
	require.Len(t, snap.Posts, 2)
	require.Len(t, snap.Comments, 1)
	assert.Equal(t, "Ada", snap.Users[0].FirstName)
	assert.Equal(t, int64(1), snap.Comments[0].PostID)
	assert.False(t, snap.ExportedAt.IsZero())
}

func TestImportSnapshot(t *testing.T) {
	t.Run("remaps identifiers", func(t *testing.T) {
		store := newTestStore(t)
		existing := seedUser(t, store)

		snap := &codec.Snapshot{
			Users: []*domain.User{
				{ID: 1, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", IsActive: true},
			},
			Posts: []*domain.Post{
				{ID: 40, UserID: 1, Description: "imported post body", CreatedAt: daysAgo(2)},
			},
			Comments: []*domain.Comment{
				{ID: 7, PostID: 40, UserID: 1, Description: "imported reply", CreatedAt: daysAgo(1), IsActive: true},
			},
		}

		stats, err := ImportSnapshot(context.Background(), store, snap)
		require.NoError(t, err)
		assert.Equal(t, ImportStats{Users: 1, Posts: 1, Comments: 1}, stats)

		out, err := ExportSnapshot(context.Background(), store)
		require.NoError(t, err)
		require.Len(t, out.Users, 2)
		require.Len(t, out.Posts, 1)
		require.Len(t, out.Comments, 1)

		grace := out.Users[1]
		assert.NotEqual(t, existing.ID, grace.ID)
		assert.Equal(t, "Grace", grace.FirstName)
		assert.Equal(t, grace.ID, out.Posts[0].UserID)
		assert.Equal(t, out.Posts[0].ID, out.Comments[0].PostID)
		assert.Equal(t, grace.ID, out.Comments[0].UserID)
	})

	t.Run("skips publication rules", func(t *testing.T) {
		store := newTestStore(t)
		snap := &codec.Snapshot{
			Users: []*domain.User{{ID: 1, FirstName: "Grace", Email: "grace@example.com", IsActive: true}},
			Posts: []*domain.Post{
				{ID: 1, UserID: 1, Description: "Sex education resources", CreatedAt: daysAgo(1)},
				{ID: 2, UserID: 1, Description: "posted right after", CreatedAt: daysAgo(1)},
			},
		}

		stats, err := ImportSnapshot(context.Background(), store, snap)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Posts)
	})

	t.Run("failure reports nothing imported", func(t *testing.T) {
		store := newTestStore(t)
		snap := &codec.Snapshot{
			Users: []*domain.User{{ID: 1, FirstName: "Grace", Email: "grace@example.com", IsActive: true}},
			Posts: []*domain.Post{{ID: 1, UserID: 1, Description: "imported post body", CreatedAt: daysAgo(1)}},
			Comments: []*domain.Comment{
				{ID: 1, PostID: 42, UserID: 1, Description: "reply to nowhere", CreatedAt: daysAgo(1)},
			},
		}

		stats, err := ImportSnapshot(context.Background(), store, snap)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "comments", verr.Field)
		assert.Equal(t, ImportStats{}, stats)

		out, err := ExportSnapshot(context.Background(), store)
		require.NoError(t, err)
		assert.Empty(t, out.Users)
		assert.Empty(t, out.Posts)
	})

	t.Run("unknown reference leaves store untouched", func(t *testing.T) {
		store := newTestStore(t)
		snap := &codec.Snapshot{
			Users: []*domain.User{{ID: 1, FirstName: "Grace", Email: "grace@example.com", IsActive: true}},
			Posts: []*domain.Post{{ID: 1, UserID: 99, Description: "orphaned post body", CreatedAt: daysAgo(1)}},
		}

		_, err := ImportSnapshot(context.Background(), store, snap)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "posts", verr.Field)

		out, err := ExportSnapshot(context.Background(), store)
		require.NoError(t, err)
		assert.Empty(t, out.Users)
		assert.Empty(t, out.Posts)
	})
}
