package mocks

import (
	"context"
	"shopapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *Service) GetProduct(ctx context.Context, productId int) (models.Product, bool, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.Product), args.Bool(1), args.Error(2)
}
func (m *Service) AddProduct(ctx context.Context, rec models.ProductRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *Service) UpdateQty(ctx context.Context, productId int, qty int) error {
	args := m.Called(ctx, productId, qty)
	return args.Error(0)
}
