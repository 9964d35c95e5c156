package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/testutil"
)

func newTemplateRepo(t *testing.T) (repo.TemplateRepo, uuid.UUID) {
	t.Helper()
	tx := testutil.NewTx(t)
	owner := testutil.CreateUser(t, tx, "templates@example.com")
	return repo.NewTemplateRepo(tx), owner
}

func TestTemplateRepo_CreateAndList(t *testing.T) {
	r, owner := newTemplateRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, domain.DefaultItem{OwnerID: owner, Kind: domain.KindPacking, Text: "Toothbrush", Person: "Alex"})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.DefaultItem{OwnerID: owner, Kind: domain.KindTodo, Text: "Water plants"})
	require.NoError(t, err)

	packing, err := r.List(ctx, owner, domain.KindPacking)
	require.NoError(t, err)
	require.Len(t, packing, 1)
	assert.Equal(t, "Toothbrush", packing[0].Text)
	assert.Equal(t, "Alex", packing[0].Person)
	assert.Equal(t, domain.KindPacking, packing[0].Kind)

	todo, err := r.List(ctx, owner, domain.KindTodo)
	require.NoError(t, err)
	require.Len(t, todo, 1)
	assert.Empty(t, todo[0].Person)
}

func TestTemplateRepo_KindWithoutTemplates(t *testing.T) {
	r, owner := newTemplateRepo(t)

	_, err := r.List(context.Background(), owner, domain.KindShop)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTemplateRepo_Delete(t *testing.T) {
	r, owner := newTemplateRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.DefaultItem{OwnerID: owner, Kind: domain.KindTodo, Text: "Lock windows"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, owner, domain.KindTodo, created.ID))

	err = r.Delete(ctx, owner, domain.KindTodo, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
