// The reconciler sweeps every persisted image reference and probes the upload
// store for it. A crash between an asset release and its row delete leaves a
// row whose image 404s; this job finds those rows and reports them. It never
// mutates anything itself.
package main

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staybook/internal/adapters/observability"
	"staybook/internal/adapters/uploads"
	"staybook/internal/domain"
	"staybook/internal/shared"
	mysqlrepo "staybook/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("uploads", cfg.UploadsBase).
		Int("workers", cfg.Workers).
		Msg("reconciler starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	store, err := uploads.New(cfg.UploadsBase, cfg.UploadsKey, cfg.UploadsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize uploads client")
	}

	refs, err := repo.ListImageRefs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing image refs failed")
	}
	log.Info().Int("refs", len(refs)).Msg("references loaded")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var dangling, errored atomic.Int64

	for _, ref := range refs {
		ref := ref

		key := domain.ImageKey(ref.Image)
		if key == "" {
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			switch err := store.Stat(ctx, key); {
			case err == nil:
				// asset present, nothing to do
			case errors.Is(err, domain.ErrNotFound):
				dangling.Add(1)
				log.Warn().
					Str("kind", ref.Kind).
					Int64("id", ref.ID).
					Str("key", key).
					Msg("row references a missing asset")
			default:
				errored.Add(1)
				log.Warn().Str("key", key).Err(err).Msg("stat failed")
			}
		}()
	}

	wg.Wait()
	log.Info().
		Int("refs", len(refs)).
		Int64("dangling", dangling.Load()).
		Int64("errors", errored.Load()).
		Msg("reconciliation completed")
}
