//go:build integration

package service_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/cache"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("catalog"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)
	host, rawPort, err := net.SplitHostPort(endpoint)
	require.NoError(t, err)
	port, err := strconv.Atoi(rawPort)
	require.NoError(t, err)

	pool, err := db.NewPgxPool(ctx, config.Postgres{
		Host:            host,
		Port:            port,
		User:            "catalog",
		Password:        "catalog",
		DB:              "catalog",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		PingTimeout:     10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))

	return pool
}

func TestCatalogService_Postgres(t *testing.T) {
	ctx := context.Background()
	pool := startPostgres(t)
	client := db.NewClient(pool)

	outboxRepo := repository.NewOutboxMsgRepository(client)
	svc := service.NewCatalogService(
		config.Catalog{DefaultLimit: 10, MaxLimit: 100, ImageUpdatePolicy: config.ImageUpdatePolicyReplace},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		client,
		repository.NewProductRepository(client),
		repository.NewImageRepository(client),
		outboxRepo,
		cache.NoopProductCache{},
	)

	urls := []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}
	created, err := svc.CreateProduct(ctx, service.CreateProductParams{
		Title:  "Men's Chill Crew Neck",
		Price:  decimal.RequireFromString("75.50"),
		Stock:  7,
		Sizes:  []string{"S", "M"},
		Gender: "men",
		Images: urls,
	})
	require.NoError(t, err)

	t.Run("Should read back what create returned", func(t *testing.T) {
		got, err := svc.FindProduct(ctx, created.ID.String())
		require.NoError(t, err)

		view := got.View()
		assert.Equal(t, created.Slug, view.Slug)
		assert.Equal(t, urls, view.Images)
		assert.True(t, created.Price.Equal(view.Price))
		assert.True(t, created.CreatedAt.Equal(view.CreatedAt))
	})

	t.Run("Should resolve by slug and by title regardless of case", func(t *testing.T) {
		bySlug, err := svc.FindProduct(ctx, "MENS_CHILL_CREW_NECK")
		require.NoError(t, err)
		byTitle, err := svc.FindProduct(ctx, "men's chill crew neck")
		require.NoError(t, err)

		assert.Equal(t, created.ID, bySlug.ID)
		assert.Equal(t, created.ID, byTitle.ID)
	})

	t.Run("Should report a duplicate title as a conflict and leave no partial rows", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Title:  "Men's Chill Crew Neck",
			Slug:   ptr.New("another"),
			Gender: "men",
			Images: []string{"https://cdn.example.com/x.jpg"},
		})
		assert.ErrorIs(t, err, apperr.ProductConflictErr)

		var images int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM product_images`).Scan(&images))
		assert.Equal(t, len(urls), images)
	})

	t.Run("Should replace images and record every change in the outbox", func(t *testing.T) {
		updated, err := svc.UpdateProduct(ctx, created.ID, service.UpdateProductParams{
			Stock:  ptr.New(3),
			Images: ptr.New([]string{"https://cdn.example.com/3.jpg"}),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Stock)

		var topics []string
		rows, err := pool.Query(ctx, `SELECT topic FROM outbox_messages ORDER BY created_at`)
		require.NoError(t, err)
		for rows.Next() {
			var topic string
			require.NoError(t, rows.Scan(&topic))
			topics = append(topics, topic)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{event.TopicProductCreated, event.TopicProductUpdated}, topics)
	})

	t.Run("Should delete with its images and then report not found", func(t *testing.T) {
		res, err := svc.DeleteProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Result.Affected)
		assert.Contains(t, res.Message, created.ID.String())

		_, err = svc.FindProduct(ctx, created.ID.String())
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)

		var images int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM product_images`).Scan(&images))
		assert.Zero(t, images)

		_, err = svc.DeleteProduct(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})

	t.Run("Should page by id into disjoint pages", func(t *testing.T) {
		seeded := make(map[string]bool)
		for _, title := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
			p, err := svc.CreateProduct(ctx, service.CreateProductParams{Title: title, Gender: "unisex"})
			require.NoError(t, err)
			seeded[p.ID.String()] = true
		}

		first, err := svc.ListProducts(ctx, service.ListProductsParams{Limit: ptr.New(2), Offset: ptr.New(0)})
		require.NoError(t, err)
		second, err := svc.ListProducts(ctx, service.ListProductsParams{Limit: ptr.New(2), Offset: ptr.New(2)})
		require.NoError(t, err)

		require.Len(t, first, 2)
		require.Len(t, second, 2)

		seen := make(map[string]bool)
		for _, p := range append(first, second...) {
			assert.False(t, seen[p.ID.String()], "product %s listed twice", p.ID)
			seen[p.ID.String()] = true
		}
		assert.Equal(t, seeded, seen)
		assert.Less(t, first[1].ID.String(), second[0].ID.String())
	})
}
