package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/cache"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

// Service consumes catalog events. It keeps the product cache coherent for
// writes made by other instances and records an audit log line per event.
type Service struct {
	logger       *slog.Logger
	mqConsumer   mq.Consumer
	productCache cache.ProductCache
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	productCache cache.ProductCache,
) *Service {
	return &Service{
		logger:       logger.With(slog.String("service", "event")),
		mqConsumer:   mqConsumer,
		productCache: productCache,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handlers := map[string]mq.HandlerFunc{
		TopicProductCreated: jsonHandler(s.handleProductCreatedEvent),
		TopicProductUpdated: jsonHandler(s.handleProductUpdatedEvent),
		TopicProductDeleted: jsonHandler(s.handleProductDeletedEvent),
	}

	for topic, handler := range handlers {
		if err := s.mqConsumer.RegisterHandler(topic, handler); err != nil {
			return nil, fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

func jsonHandler[T any](fn func(context.Context, T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := fn(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", ev.ProductID),
		slog.String("slug", ev.Slug),
		slog.Int("images", len(ev.Images)),
	)
	return nil
}

func (s *Service) handleProductUpdatedEvent(ctx context.Context, ev ProductUpdatedEvent) error {
	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", ev.ProductID),
		slog.Bool("images_replaced", ev.ImagesReplaced),
	)
	return s.evict(ctx, ev.ProductID)
}

func (s *Service) handleProductDeletedEvent(ctx context.Context, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", ev.ProductID))
	return s.evict(ctx, ev.ProductID)
}

func (s *Service) evict(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("parse product id: %w", err)
	}

	if err := s.productCache.Delete(ctx, id); err != nil {
		return fmt.Errorf("evict product from cache: %w", err)
	}

	return nil
}
