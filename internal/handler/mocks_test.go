package handler

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Page() catalog.Page {
	args := m.Called()
	return args.Get(0).(catalog.Page)
}

func (m *MockCatalogService) Loading() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockCatalogService) Load(ctx context.Context) (catalog.Page, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Page), args.Error(1)
}

func (m *MockCatalogService) Product(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCheckoutService is a mock implementation of checkout.Service.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Handoff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutService) SubmitOrder(ctx context.Context) (*model.OrderResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}
