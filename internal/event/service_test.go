package event_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	running  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.running = true
	return func() { c.running = false }, nil
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	consumer := &fakeConsumer{}
	productCache := &mockCache{}
	svc := event.New(logger, consumer, productCache)

	cleanup, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.True(t, consumer.running)
	assert.Len(t, consumer.handlers, 3)

	id := uuid.New()

	t.Run("Should evict cache on product updated", func(t *testing.T) {
		productCache.On("Delete", mock.Anything, id).Return(nil).Once()

		payload, _ := json.Marshal(event.ProductUpdatedEvent{ProductSnapshot: event.ProductSnapshot{ProductID: id.String()}})
		require.NoError(t, consumer.handlers[event.TopicProductUpdated](ctx, event.TopicProductUpdated, payload))
	})

	t.Run("Should evict cache on product deleted", func(t *testing.T) {
		productCache.On("Delete", mock.Anything, id).Return(nil).Once()

		payload, _ := json.Marshal(event.ProductDeletedEvent{ProductID: id.String()})
		require.NoError(t, consumer.handlers[event.TopicProductDeleted](ctx, event.TopicProductDeleted, payload))
	})

	t.Run("Should only log product created", func(t *testing.T) {
		payload, _ := json.Marshal(event.ProductCreatedEvent{ProductSnapshot: event.ProductSnapshot{ProductID: id.String()}})
		require.NoError(t, consumer.handlers[event.TopicProductCreated](ctx, event.TopicProductCreated, payload))
	})

	t.Run("Should reject malformed payload", func(t *testing.T) {
		err := consumer.handlers[event.TopicProductDeleted](ctx, event.TopicProductDeleted, []byte("{"))
		assert.ErrorContains(t, err, "unmarshal product.deleted event")
	})

	t.Run("Should reject invalid product id", func(t *testing.T) {
		payload, _ := json.Marshal(event.ProductDeletedEvent{ProductID: "nope"})
		err := consumer.handlers[event.TopicProductDeleted](ctx, event.TopicProductDeleted, payload)
		assert.ErrorContains(t, err, "parse product id")
	})

	cleanup()
	assert.False(t, consumer.running)
	productCache.AssertExpectations(t)
}
