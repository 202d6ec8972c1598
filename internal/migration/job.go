// Package migration rellena el campo category de los productos legacy.
//
// Cada tick toma una página de productos sin el campo category, lo fija a ""
// y guarda el producto. El job termina cuando una página llega incompleta.
package migration

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

const (
	DefaultLimit    = 1000
	DefaultInterval = 30 * time.Minute
)

// Store es lo que el job necesita del store de productos
type Store interface {
	FindUncategorized(ctx context.Context, page models.Page) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
}

type Options struct {
	Limit    int64
	Interval time.Duration
}

// Job mantiene el cursor de la migración; no hay estado global
type Job struct {
	store      Store
	checkpoint CheckpointStore
	limit      int64
	interval   time.Duration
	log        zerolog.Logger

	progress Progress
	loaded   bool
}

func NewJob(store Store, checkpoint CheckpointStore, opts Options, log zerolog.Logger) *Job {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if checkpoint == nil {
		checkpoint = NewMemoryCheckpoint()
	}

	return &Job{
		store:      store,
		checkpoint: checkpoint,
		limit:      opts.Limit,
		interval:   opts.Interval,
		log:        log.With().Str("job", "category_backfill").Logger(),
	}
}

// Progress devuelve el último estado conocido
func (j *Job) Progress() Progress {
	return j.progress
}

// Run ejecuta un tick inmediatamente y luego uno por intervalo hasta terminar.
// El primer error detiene el job.
func (j *Job) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		p, err := j.RunOnce(ctx)
		if err != nil {
			j.log.Error().Err(err).Int64("page", p.Page).Msg("migration halted")
			return err
		}
		if p.Done {
			j.log.Info().Int64("pages", p.Page).Int64("migrated", p.Migrated).Msg("migration finished")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce procesa una página y guarda el checkpoint
func (j *Job) RunOnce(ctx context.Context) (Progress, error) {
	const op = "migration.RunOnce"

	if err := j.load(ctx); err != nil {
		return j.progress, e.Wrap(op, err)
	}
	if j.progress.Done {
		return j.progress, nil
	}

	// Los productos migrados salen del filtro, así que la ventana page*limit
	// sobre el conjunto original equivale a este offset sobre el conjunto actual.
	offset := max(j.progress.Page*j.limit-j.progress.Migrated, 0)

	batch, err := j.store.FindUncategorized(ctx, models.Page{Skip: offset, Limit: j.limit})
	if err != nil {
		return j.progress, e.Wrap(op, err)
	}

	for i := range batch {
		product := &batch[i]
		product.SetCategory("")

		if err := j.store.Save(ctx, product); err != nil {
			j.persist(ctx)
			return j.progress, e.Wrap(op, err)
		}

		j.progress.Migrated++
		j.log.Debug().Str("product_id", product.ID.Hex()).Msg("product migrated")
	}

	j.progress.Page++
	if int64(len(batch)) < j.limit {
		j.progress.Done = true
	}

	if err := j.checkpoint.Save(ctx, j.progress); err != nil {
		return j.progress, e.Wrap(op, err)
	}

	j.log.Info().
		Int64("page", j.progress.Page).
		Int("batch", len(batch)).
		Int64("migrated", j.progress.Migrated).
		Bool("done", j.progress.Done).
		Msg("migration tick")

	return j.progress, nil
}

func (j *Job) load(ctx context.Context) error {
	if j.loaded {
		return nil
	}

	p, err := j.checkpoint.Load(ctx)
	if err != nil {
		return err
	}

	j.progress = p
	j.loaded = true
	return nil
}

// persist guarda el progreso parcial antes de abortar; el error original tiene prioridad
func (j *Job) persist(ctx context.Context) {
	if err := j.checkpoint.Save(ctx, j.progress); err != nil {
		j.log.Warn().Err(err).Msg("failed to save checkpoint")
	}
}
