package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
)

func TestTemplateService_List(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateRepo{
		list: func(context.Context, uuid.UUID, domain.ListKind) ([]domain.DefaultItem, error) { return nil, nil },
	})

	got, err := svc.List(context.Background(), uuid.New(), domain.KindPacking)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = svc.List(context.Background(), uuid.New(), domain.KindShop)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTemplateService_Create(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateRepo{
		create: func(_ context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) { return tpl, nil },
	})
	ctx := context.Background()

	got, err := svc.Create(ctx, domain.DefaultItem{Kind: domain.KindTodo, Text: " Water plants ", Person: "Alex"})
	require.NoError(t, err)
	assert.Equal(t, "Water plants", got.Text)
	assert.Empty(t, got.Person, "todo templates carry no person")

	_, err = svc.Create(ctx, domain.DefaultItem{Kind: domain.KindPacking, Text: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, domain.DefaultItem{Kind: domain.KindPlanning, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTemplateService_Delete(t *testing.T) {
	svc := service.NewTemplateService(&mockTemplateRepo{
		delete: func(context.Context, uuid.UUID, domain.ListKind, uuid.UUID) error { return domain.ErrNotFound },
	})

	err := svc.Delete(context.Background(), uuid.New(), domain.KindTodo, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
