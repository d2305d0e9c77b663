package sqlite_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInteractionService_LogInteraction(t *testing.T) {
	t.Parallel()

	t.Run("stores interaction with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInteractionService(openTestDB(t))
		i := &vipbot.Interaction{UserID: "u1", UserName: "alice", Query: "harga gold?", Answer: "Rp 100.000"}

		err := svc.LogInteraction(context.Background(), i)
		require.NoError(t, err)
		assert.NotEmpty(t, i.ID)
		assert.False(t, i.CreatedAt.IsZero())

		found, err := svc.FindInteractions(context.Background(), vipbot.InteractionFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, i.ID, found[0].ID)
		assert.Equal(t, "alice", found[0].UserName)
		assert.Equal(t, "harga gold?", found[0].Query)
		assert.Equal(t, "Rp 100.000", found[0].Answer)
	})

	t.Run("truncates long answers", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInteractionService(openTestDB(t))
		i := &vipbot.Interaction{UserID: "u1", Query: "q", Answer: strings.Repeat("a", 500)}

		require.NoError(t, svc.LogInteraction(context.Background(), i))

		found, err := svc.FindInteractions(context.Background(), vipbot.InteractionFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Len(t, found[0].Answer, vipbot.MaxLoggedAnswer)
	})

	t.Run("rejects invalid interaction", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInteractionService(openTestDB(t))

		err := svc.LogInteraction(context.Background(), &vipbot.Interaction{Query: "q"})

		require.Error(t, err)
		assert.Equal(t, vipbot.EINVALID, vipbot.ErrorCode(err))
	})
}

func TestInteractionService_FindInteractions(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewInteractionService(openTestDB(t))
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for n, user := range []string{"u1", "u2", "u1", "u1"} {
		require.NoError(t, svc.LogInteraction(context.Background(), &vipbot.Interaction{
			UserID:    user,
			Query:     "q" + string(rune('0'+n)),
			CreatedAt: base.Add(time.Duration(n) * time.Minute),
		}))
	}

	t.Run("returns newest first", func(t *testing.T) {
		found, err := svc.FindInteractions(context.Background(), vipbot.InteractionFilter{})
		require.NoError(t, err)
		require.Len(t, found, 4)
		assert.Equal(t, "q3", found[0].Query)
		assert.Equal(t, "q0", found[3].Query)
		assert.Equal(t, base.Add(3*time.Minute), found[0].CreatedAt)
	})

	t.Run("filters by user and limits", func(t *testing.T) {
		user := "u1"
		found, err := svc.FindInteractions(context.Background(), vipbot.InteractionFilter{UserID: &user, Limit: 2})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "q3", found[0].Query)
		assert.Equal(t, "q2", found[1].Query)
	})
}
