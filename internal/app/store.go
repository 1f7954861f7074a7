package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/config"
	"github.com/Freeeeeet/slot_scheduler/internal/repository"
	"github.com/Freeeeeet/slot_scheduler/internal/repository/memory"
)

// OpenStore выбирает хранилище исключений по конфигурации.
// Без DB_DSN данные живут в памяти процесса и теряются при перезапуске.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SlotExceptionStore, func(), error) {
	if cfg.UseMemoryStore() {
		logger.Warn("DB_DSN is not set, using in-memory slot store")
		return memory.NewStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("✅ Connected to database")

	if cfg.MigrationsEnabled {
		migrator, err := NewMigrator(pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		runErr := migrator.Run(ctx)
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Warn("Failed to close migrator", zap.Error(closeErr))
		}
		if runErr != nil {
			pool.Close()
			return nil, nil, runErr
		}
	}

	return repository.NewSlotExceptionRepository(pool, logger), pool.Close, nil
}
