package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/outbox"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

// Service moves catalog events from the outbox table to Kafka.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			n, err := s.RelayBatch(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.InfoContext(ctx, "relayed outbox msgs", slog.Int("count", n))
			}
		}
	}
}

// RelayBatch publishes one batch of unprocessed messages and marks them processed.
// A message that fails to publish is still marked, with its error recorded, so a
// poison message cannot block the queue. It returns the number of messages handled.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var handled int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		items := s.produceAll(ctx, outboxMsgs)

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		handled = len(items)
		return nil
	})

	return handled, err
}

func (s *Service) produceAll(ctx context.Context, msgs []repository.ListUnprocessedOutboxMsgsResult) []repository.BulkUpdateOutboxMsgsItem {
	var (
		mu    sync.Mutex
		items = make([]repository.BulkUpdateOutboxMsgsItem, 0, len(msgs))
	)

	g := new(errgroup.Group)
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}

	// Messages sharing a partition key are produced one after another in outbox order.
	for _, group := range groupByPartitionKey(msgs) {
		g.Go(func() error {
			for _, msg := range group {
				item := s.produce(ctx, msg)

				mu.Lock()
				items = append(items, item)
				mu.Unlock()
			}
			return nil
		})
	}

	// Goroutines report failures through items, never through the group.
	_ = g.Wait()

	return items
}

func (s *Service) produce(ctx context.Context, msg repository.ListUnprocessedOutboxMsgsResult) repository.BulkUpdateOutboxMsgsItem {
	item := repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}

	msgCtx := outbox.ContextFromHeaders(ctx, msg.Headers)
	if err := s.mqProducer.Produce(msgCtx, mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	}); err != nil {
		s.logger.ErrorContext(msgCtx, "error producing message",
			slog.String("outbox_msg_id", msg.ID.String()),
			slog.String("topic", msg.Topic),
			slog.Any("error", err),
		)
		item.Error = ptr.New(err.Error())
	}

	return item
}

// groupByPartitionKey splits msgs into ordered runs per partition key. Messages
// without a key each form their own group.
func groupByPartitionKey(msgs []repository.ListUnprocessedOutboxMsgsResult) [][]repository.ListUnprocessedOutboxMsgsResult {
	var (
		groups [][]repository.ListUnprocessedOutboxMsgsResult
		index  = make(map[string]int)
	)

	for _, msg := range msgs {
		if msg.PartitionKey == nil {
			groups = append(groups, []repository.ListUnprocessedOutboxMsgsResult{msg})
			continue
		}

		i, ok := index[*msg.PartitionKey]
		if !ok {
			i = len(groups)
			index[*msg.PartitionKey] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], msg)
	}

	return groups
}
