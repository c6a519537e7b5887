package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/obs"
)

const migrationsTable = "schema_migrations"

type migrator struct {
	db      databasePath
	dir     string
	dryRun  bool
	logger  zerolog.Logger
	emulate bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("cmd", "migrate").Logger()

	dbFlag := flag.String("database", cfg.SpannerDatabase, "Spanner database path (projects/P/instances/I/databases/D)")
	migrateDir := flag.String("migrations", "migrations", "Directory containing migration SQL files")
	dryRun := flag.Bool("dry-run", false, "List pending migrations without applying them")
	flag.Parse()

	db, err := parseDatabasePath(*dbFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid database path")
	}

	m := &migrator{
		db:      db,
		dir:     *migrateDir,
		dryRun:  *dryRun,
		logger:  logger,
		emulate: os.Getenv("SPANNER_EMULATOR_HOST") != "",
	}
	if m.emulate {
		logger.Info().Str("host", os.Getenv("SPANNER_EMULATOR_HOST")).Msg("using Spanner emulator")
	}

	if err := m.run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Msg("migrations completed")
}

func (m *migrator) run(ctx context.Context) error {
	if m.emulate {
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// ensureInstance creates the instance on the emulator, where it does not survive restarts.
func (m *migrator) ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.db.Instance()})
	if err == nil {
		m.logger.Debug().Str("instance", m.db.InstanceID).Msg("instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check instance: %w", err)
	}

	m.logger.Info().Str("instance", m.db.InstanceID).Msg("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     m.db.Project(),
		InstanceId: m.db.InstanceID,
		Instance: &instancepb.Instance{
			Config:      m.db.Project() + "/instanceConfigs/emulator-config",
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.logger.Warn().Err(err).Msg("waiting for instance creation")
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.db.String()})
	if err == nil {
		m.logger.Debug().Str("database", m.db.DatabaseID).Msg("database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.logger.Info().Str("database", m.db.DatabaseID).Msg("creating database")
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.db.Instance(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.db.DatabaseID),
		ExtraStatements: []string{migrationsTableDDL},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func (m *migrator) applyMigrations(ctx context.Context) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Warn().Str("dir", m.dir).Msg("no migration files found")
		return nil
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	client, err := spanner.NewClient(ctx, m.db.String())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	if err := m.ensureMigrationsTable(ctx, adminClient, client); err != nil {
		return err
	}
	applied, err := appliedMigrations(ctx, client)
	if err != nil {
		return err
	}

	for _, name := range pendingMigrations(files, applied) {
		log := m.logger.With().Str("migration", name).Logger()
		if m.dryRun {
			log.Info().Msg("pending")
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			log.Warn().Msg("migration has no statements")
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.db.String(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		_, err = client.Apply(ctx, []*spanner.Mutation{
			spanner.Insert(migrationsTable, []string{"name", "applied_at"}, []interface{}{name, spanner.CommitTimestamp}),
		})
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		log.Info().Int("statements", len(statements)).Msg("applied")
	}
	return nil
}

func (m *migrator) ensureMigrationsTable(ctx context.Context, admin *database.DatabaseAdminClient, client *spanner.Client) error {
	iter := client.Single().Query(ctx, spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = '' AND table_name = @name",
		Params: map[string]interface{}{"name": migrationsTable},
	})
	defer iter.Stop()
	row, err := iter.Next()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if count > 0 {
		return nil
	}

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   m.db.String(),
		Statements: []string{migrationsTableDDL},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}
	return op.Wait(ctx)
}

func appliedMigrations(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	applied := make(map[string]bool)
	iter := client.Single().Read(ctx, migrationsTable, spanner.AllKeys(), []string{"name"})
	err := iter.Do(func(row *spanner.Row) error {
		var name string
		if err := row.Columns(&name); err != nil {
			return err
		}
		applied[name] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	return applied, nil
}
