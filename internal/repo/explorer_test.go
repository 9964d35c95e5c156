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

func TestExplorerRepo_Browse(t *testing.T) {
	tx := testutil.NewTx(t)
	owner := testutil.CreateUser(t, tx, "explorer@example.com")
	trips := repo.NewTripRepo(tx)
	r := repo.NewExplorerRepo(tx)
	ctx := context.Background()

	for _, name := range []string{"Travel 1", "Travel 2", "Travel 3"} {
		_, err := trips.Create(ctx, domain.Trip{OwnerID: owner, Name: name})
		require.NoError(t, err)
	}

	limit := 2
	rows, total, err := r.Browse(ctx, owner, "trips", domain.NewPaginationParams(nil, &limit))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rows, 2)
	assert.IsType(t, "", rows[0]["id"], "uuid columns are rendered as strings")
	assert.Contains(t, rows[0], "name")
}

func TestExplorerRepo_Browse_UnknownCollection(t *testing.T) {
	tx := testutil.NewTx(t)
	owner := testutil.CreateUser(t, tx, "explorer2@example.com")

	_, _, err := repo.NewExplorerRepo(tx).Browse(context.Background(), owner, "users", domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
