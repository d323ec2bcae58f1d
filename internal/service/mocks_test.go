package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/cache"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

var (
	_ repository.ProductRepository   = (*mockProductRepo)(nil)
	_ repository.ImageRepository     = (*mockImageRepo)(nil)
	_ repository.OutboxMsgRepository = (*mockOutboxMsgRepo)(nil)
	_ cache.ProductCache             = (*mockProductCache)(nil)
)

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) WithDB(db.DB) repository.ProductRepository { return m }

func (m *mockProductRepo) CreateProduct(ctx context.Context, product model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) GetProductByIDForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) FindProductByTerm(ctx context.Context, pattern string) (model.Product, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, product model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) DeleteProduct(ctx context.Context, id uuid.UUID) (repository.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.DeleteResult), args.Error(1)
}

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) WithDB(db.DB) repository.ImageRepository { return m }

func (m *mockImageRepo) CreateImages(ctx context.Context, images []model.Image) error {
	return m.Called(ctx, images).Error(0)
}

func (m *mockImageRepo) ListImagesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]model.Image, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).(map[uuid.UUID][]model.Image), args.Error(1)
}

func (m *mockImageRepo) DeleteImagesByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type mockOutboxMsgRepo struct{ mock.Mock }

func (m *mockOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return m }

func (m *mockOutboxMsgRepo) CreateOutboxMsg(ctx context.Context, params repository.CreateOutboxMsgParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *mockOutboxMsgRepo) ListUnprocessedOutboxMsgs(ctx context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]repository.ListUnprocessedOutboxMsgsResult), args.Error(1)
}

func (m *mockOutboxMsgRepo) BulkUpdateOutboxMsgs(ctx context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	return m.Called(ctx, params).Error(0)
}

type mockProductCache struct{ mock.Mock }

func (m *mockProductCache) Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Bool(1), args.Error(2)
}

func (m *mockProductCache) Set(ctx context.Context, product model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
