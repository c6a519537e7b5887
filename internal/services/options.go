package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/round_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_half_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/delete_group_override"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/edit_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/replace_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_group_override"
	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/obs"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	httptransport "github.com/light-bringer/pricing-service/internal/transport/http"
	"github.com/light-bringer/pricing-service/internal/transport/http/pricing"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	RedisClient    *redis.Client
	PricingHandler *pricing.Handler
	Readiness      map[string]httptransport.ReadinessCheck
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	opts := &ServiceOptions{
		SpannerClient: spannerClient,
		Readiness: map[string]httptransport.ReadinessCheck{
			"spanner": spannerCheck(spannerClient),
		},
	}

	// 2. Optional Redis for the catalog read cache
	if cfg.CacheEnabled() {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		opts.RedisClient = redis.NewClient(redisOpts)
		if err := redisotel.InstrumentTracing(opts.RedisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
		opts.Readiness["redis"] = func(ctx context.Context) error {
			return opts.RedisClient.Ping(ctx).Err()
		}
	}

	// 3. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	metrics := obs.NewPricingMetrics(cfg.MetricsNS, reg)

	// 4. Create repositories
	var catalog contracts.CatalogLookup = repo.NewCatalogRepo(spannerClient)
	if opts.RedisClient != nil {
		catalog = repo.NewCachedCatalog(catalog, repo.NewJSONCache(opts.RedisClient, cfg.CatalogCacheTTL), logger)
	}
	clientRepo := repo.NewClientRepo(spannerClient)
	overrideRepo := repo.NewOverrideRepo(spannerClient)
	tierRepo := repo.NewPriceTierRepo(spannerClient)
	roundingRepo := repo.NewRoundingRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo()

	// 5. Create command use cases (write operations)
	setOverride := set_group_override.NewInteractor(clientRepo, catalog, overrideRepo, outboxRepo, comm, clk, logger)
	deleteOverride := delete_group_override.NewInteractor(overrideRepo, outboxRepo, comm, clk, logger)
	replaceTiers := replace_price_tiers.NewInteractor(catalog, tierRepo, outboxRepo, comm, clk, logger)
	editRounding := edit_rounding_table.NewInteractor(roundingRepo, outboxRepo, comm, clk, logger)

	// 6. Create calculations and queries (read operations)
	calculateProduct := calculate_product_price.NewInteractor(catalog, clientRepo, overrideRepo, metrics, logger)
	calculateHalfProduct := calculate_half_product_price.NewInteractor(catalog, clientRepo, overrideRepo, tierRepo, metrics, logger)

	// 7. Create HTTP handler
	opts.PricingHandler = pricing.NewHandler(pricing.HandlerConfig{
		CalculateProduct:     calculateProduct,
		CalculateHalfProduct: calculateHalfProduct,
		SetOverride:          setOverride,
		DeleteOverride:       deleteOverride,
		ReplaceTiers:         replaceTiers,
		EditRounding:         editRounding,
		ListTiers:            list_price_tiers.NewQuery(catalog, tierRepo),
		GetRounding:          get_rounding_table.NewQuery(roundingRepo),
		RoundPrice:           round_price.NewQuery(roundingRepo, metrics),
		Logger:               logger,
	})

	return opts, nil
}

func spannerCheck(client *spanner.Client) httptransport.ReadinessCheck {
	return func(ctx context.Context) error {
		iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
		defer iter.Stop()
		if _, err := iter.Next(); err != nil && err != iterator.Done {
			return err
		}
		return nil
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
