package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/obs"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Options for the outbox cleanup job.
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	BatchSize              int64
	DryRun                 bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("cmd", "cleanup_outbox").Logger()

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.SpannerDatabase, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.Int64Var(&opts.BatchSize, "batch-size", 500, "Events deleted per commit")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if opts.BatchSize <= 0 {
		logger.Fatal().Int64("batch_size", opts.BatchSize).Msg("batch size must be positive")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Spanner client")
	}
	defer client.Close()

	job := &cleanupJob{
		client:    client,
		committer: committer.NewCommitter(client),
		logger:    logger,
	}
	policies := retentionPolicies(clock.NewRealClock().Now(), opts.CompletedRetentionDays, opts.FailedRetentionDays)

	total, err := job.run(ctx, policies, opts.BatchSize, opts.DryRun)
	if err != nil {
		logger.Fatal().Err(err).Msg("cleanup failed")
	}
	logger.Info().Int64("events", total).Bool("dry_run", opts.DryRun).Msg("cleanup completed")
}

type cleanupJob struct {
	client    *spanner.Client
	committer *committer.Committer
	logger    zerolog.Logger
}

func (j *cleanupJob) run(ctx context.Context, policies []retentionPolicy, batch int64, dryRun bool) (int64, error) {
	var total int64
	for _, p := range policies {
		log := j.logger.With().Str("status", p.Status).Time("cutoff", p.Cutoff).Logger()

		if dryRun {
			count, err := j.count(ctx, p)
			if err != nil {
				return total, err
			}
			log.Info().Int64("events", count).Msg("would delete")
			total += count
			continue
		}

		deleted, err := j.purge(ctx, p, batch)
		total += deleted
		if err != nil {
			return total, err
		}
		log.Info().Int64("events", deleted).Msg("deleted")
	}
	return total, nil
}

func (j *cleanupJob) count(ctx context.Context, p retentionPolicy) (int64, error) {
	iter := j.client.Single().Query(ctx, p.countStatement())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", p.Status, err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// purge deletes matching events batch by batch, one commit per batch.
func (j *cleanupJob) purge(ctx context.Context, p retentionPolicy, batch int64) (int64, error) {
	model := m_outbox.NewModel()
	var deleted int64
	for {
		ids, err := j.batchIDs(ctx, p, batch)
		if err != nil {
			return deleted, err
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		plan := committer.NewPlan()
		for _, id := range ids {
			plan.Add(model.DeleteMut(id))
		}
		if err := j.committer.Apply(ctx, plan); err != nil {
			return deleted, fmt.Errorf("failed to delete %s events: %w", p.Status, err)
		}
		deleted += int64(len(ids))
		j.logger.Debug().Str("status", p.Status).Int("batch", len(ids)).Msg("batch deleted")

		if int64(len(ids)) < batch {
			return deleted, nil
		}
	}
}

func (j *cleanupJob) batchIDs(ctx context.Context, p retentionPolicy, batch int64) ([]string, error) {
	iter := j.client.Single().Query(ctx, p.batchStatement(batch))
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s events: %w", p.Status, err)
		}
		var id string
		if err := row.Columns(&id); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		ids = append(ids, id)
	}
}
