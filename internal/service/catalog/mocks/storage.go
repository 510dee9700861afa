package mocks

import (
	"context"
	"shopapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) ListProducts(ctx context.Context) ([]models.ProductRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ProductRecord), args.Error(1)
}
func (m *Storage) GetProduct(ctx context.Context, productId int) (models.ProductRecord, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.ProductRecord), args.Error(1)
}
func (m *Storage) AddProduct(ctx context.Context, rec models.ProductRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *Storage) UpdateQty(ctx context.Context, productId int, qty int) error {
	args := m.Called(ctx, productId, qty)
	return args.Error(0)
}
