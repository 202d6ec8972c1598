package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"product-catalog-service/internal/config"
	"product-catalog-service/internal/database"
	"product-catalog-service/internal/logger"
	"product-catalog-service/internal/migration"
	"product-catalog-service/internal/seed"
	"product-catalog-service/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	stores *database.Stores
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administrative jobs for the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(cfg.LogLevel, cfg.LogFormat)

			a.stores, err = database.Open(cmd.Context(), cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.stores == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return a.stores.Close(ctx)
		},
	}

	root.AddCommand(newMigrateCmd(a), newSeedCmd(a))
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	var (
		interval   time.Duration
		batchSize  int
		checkpoint string
		once       bool
		reset      bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Backfill an empty category on legacy products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Migration.Interval
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = a.cfg.Migration.BatchSize
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := a.checkpointStore(ctx, checkpoint, reset)
			if err != nil {
				return err
			}
			defer closeStore()

			job := migration.NewJob(a.stores.Products, store, migration.Options{
				Limit:    int64(batchSize),
				Interval: interval,
			}, a.log)

			if once {
				p, err := job.RunOnce(ctx)
				if err != nil {
					return err
				}
				a.log.Info().Int64("page", p.Page).Int64("migrated", p.Migrated).Bool("done", p.Done).Msg("single tick finished")
				return nil
			}
			return job.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", migration.DefaultInterval, "time between ticks")
	cmd.Flags().IntVar(&batchSize, "batch-size", migration.DefaultLimit, "products per tick")
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "memory", "checkpoint store: memory or redis")
	cmd.Flags().BoolVar(&once, "once", false, "run a single tick and exit")
	cmd.Flags().BoolVar(&reset, "reset", false, "discard the saved redis checkpoint before starting")

	return cmd
}

func (a *app) checkpointStore(ctx context.Context, kind string, reset bool) (migration.CheckpointStore, func(), error) {
	switch kind {
	case "memory":
		return migration.NewMemoryCheckpoint(), func() {}, nil
	case "redis":
		if a.cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("REDIS_ADDR is required for the redis checkpoint")
		}

		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		closeFn := func() {
			if err := client.Close(); err != nil {
				a.log.Warn().Err(err).Msg("redis close error")
			}
		}

		if err := client.Ping(ctx).Err(); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}

		store := migration.NewRedisCheckpoint(client, a.cfg.Migration.CheckpointKey)
		if reset {
			if err := store.Reset(ctx); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return store, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown checkpoint store %q", kind)
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create one product per entry of a JSON array file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := service.NewProductService(a.stores.Products)

			n, err := seed.LoadFile(cmd.Context(), file, products)
			if err != nil {
				return err
			}

			a.log.Info().Int("products", n).Str("file", file).Msg("seed data loaded")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "TEST_DATA.json", "path to the seed data file")
	return cmd
}
