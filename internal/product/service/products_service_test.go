package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepost/internal/domain"
)

type mockRepository struct {
	FindByIDsFunc func(ctx context.Context, ids []int) ([]domain.Product, error)
}

func (m *mockRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func TestGetProductsByIDs_AllFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Name: "Mouse"},
				{ID: 2, Name: "Keyboard"},
			}, nil
		},
	}
	svc := NewService(repo)

	found, notFound, err := svc.GetProductsByIDs(context.Background(), []int{1, 2})

	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Empty(t, notFound)
}

func TestGetProductsByIDs_PartiallyFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Name: "Mouse"}}, nil
		},
	}
	svc := NewService(repo)

	found, notFound, err := svc.GetProductsByIDs(context.Background(), []int{1, 7, 9})

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].ID)
	assert.Equal(t, []int{7, 9}, notFound)
}

func TestGetProductsByIDs_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return nil, boom
		},
	}
	svc := NewService(repo)

	found, notFound, err := svc.GetProductsByIDs(context.Background(), []int{1})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, found)
	assert.Nil(t, notFound)
}
