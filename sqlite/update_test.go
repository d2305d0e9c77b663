package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateService(t *testing.T) {
	t.Parallel()

	t.Run("records updates and lists newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUpdateService(openTestDB(t))
		base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

		require.NoError(t, svc.NotifyUpdate(context.Background(), vipbot.CatalogUpdate{
			Revision: "aaa", Products: 10, FAQ: 3, Categories: 2, AdoptedAt: base,
		}))
		require.NoError(t, svc.NotifyUpdate(context.Background(), vipbot.CatalogUpdate{
			Revision: "bbb", Products: 11, FAQ: 3, Categories: 2, AdoptedAt: base.Add(5 * time.Minute),
		}))

		updates, err := svc.FindUpdates(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, updates, 2)
		assert.Equal(t, "bbb", updates[0].Revision)
		assert.Equal(t, 11, updates[0].Products)
		assert.NotEmpty(t, updates[0].ID)
		assert.Equal(t, base.Add(5*time.Minute), updates[0].AdoptedAt)
		assert.Equal(t, "aaa", updates[1].Revision)
	})

	t.Run("limits results", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUpdateService(openTestDB(t))
		for i := 0; i < 3; i++ {
			require.NoError(t, svc.NotifyUpdate(context.Background(), vipbot.CatalogUpdate{Revision: "r"}))
		}

		updates, err := svc.FindUpdates(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, updates, 2)
	})
}
