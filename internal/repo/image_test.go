package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/testutil"
)

func TestImageRepo_CreateAndList(t *testing.T) {
	tx := testutil.NewTx(t)
	owner := testutil.CreateUser(t, tx, "images@example.com")
	r := repo.NewImageRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Image{OwnerID: owner, Key: "images/test-a.png", ContentType: "image/png", Size: 42})
	require.NoError(t, err)
	assert.Equal(t, "images/test-a.png", created.Key)
	assert.Equal(t, int64(42), created.Size)

	got, err := r.List(ctx, 100)
	require.NoError(t, err)

	keys := make([]string, 0, len(got))
	for _, img := range got {
		keys = append(keys, img.Key)
	}
	assert.Contains(t, keys, "images/test-a.png")

	// A unique violation aborts the surrounding transaction, so this runs last.
	_, err = r.Create(ctx, domain.Image{OwnerID: owner, Key: "images/test-a.png", ContentType: "image/png", Size: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
