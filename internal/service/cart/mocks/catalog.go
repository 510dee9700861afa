package mocks

import (
	"context"
	"shopapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Catalog struct {
	mock.Mock
}

func (m *Catalog) GetProduct(ctx context.Context, productId int) (models.Product, bool, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.Product), args.Bool(1), args.Error(2)
}
