package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository/base"
)

// ChangeChannel канал NOTIFY, в который пишет триггер таблицы slot_exceptions
const ChangeChannel = "slot_exceptions_changed"

const (
	notifyDebounce  = 50 * time.Millisecond
	reconnectDelay  = time.Second
	maxReconnectLag = 30 * time.Second
)

// SlotExceptionRepository хранилище исключений в PostgreSQL.
// Подписка держит отдельное соединение с LISTEN и перечитывает набор на каждое уведомление.
type SlotExceptionRepository struct {
	*base.Repository
	logger *zap.Logger
}

var _ SlotExceptionStore = (*SlotExceptionRepository)(nil)

func NewSlotExceptionRepository(pool *pgxpool.Pool, logger *zap.Logger) *SlotExceptionRepository {
	return &SlotExceptionRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// List получает все записи
func (r *SlotExceptionRepository) List(ctx context.Context) ([]model.SlotException, error) {
	query := `
		SELECT id::text, to_char(date, 'YYYY-MM-DD'), time, removed
		FROM slot_exceptions
		ORDER BY date, time, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slot exceptions: %w", err)
	}
	defer rows.Close()

	var records []model.SlotException
	for rows.Next() {
		var rec model.SlotException
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Time, &rec.Removed); err != nil {
			return nil, fmt.Errorf("scan slot exception: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot exceptions: %w", err)
	}

	return records, nil
}

// Create создаёт запись и возвращает её id
func (r *SlotExceptionRepository) Create(ctx context.Context, record model.SlotException) (string, error) {
	query := `
		INSERT INTO slot_exceptions (id, date, time, removed)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id::text
	`

	var id string
	err := r.QueryRow(ctx, query, uuid.New(), record.Date, record.Time, record.Removed).Scan(&id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return "", model.ErrAlreadyOffered
		}
		return "", model.NewWriteError("create slot exception", err)
	}

	return id, nil
}

// SetRemoved переключает флаг removed
func (r *SlotExceptionRepository) SetRemoved(ctx context.Context, id string, removed bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}

	query := `
		UPDATE slot_exceptions
		SET removed = $2, updated_at = now()
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id, removed)
	if err != nil {
		return mapWriteError("update slot exception", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete удаляет запись навсегда
func (r *SlotExceptionRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}

	affected, err := r.ExecAffected(ctx, `DELETE FROM slot_exceptions WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete slot exception", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// mapWriteError переводит ошибки изменения записи по id в ошибки модели.
// Уникальный индекс допускает только одну активную запись на пару (дата, время).
func mapWriteError(op string, err error) error {
	switch {
	case base.IsInvalidInput(err):
		return model.ErrNotFound
	case base.IsUniqueViolation(err):
		return model.ErrAlreadyOffered
	default:
		return model.NewWriteError(op, err)
	}
}

// Subscribe слушает канал изменений и доставляет полный снимок после каждого уведомления
func (r *SlotExceptionRepository) Subscribe(ctx context.Context, fn SnapshotFunc) (CancelFunc, error) {
	conn, err := r.listen(ctx)
	if err != nil {
		return nil, err
	}

	records, err := r.List(ctx)
	if err != nil {
		conn.Release()
		return nil, err
	}

	subCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	sub := &pgSubscription{fn: fn, stop: stop}
	sub.deliver(records)

	go r.watch(subCtx, conn, sub)

	return sub.cancel, nil
}

func (r *SlotExceptionRepository) listen(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := r.Pool().Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangeChannel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", ChangeChannel, err)
	}

	return conn, nil
}

// watch единственная горутина доставки, поэтому снимки приходят подписчику по порядку
func (r *SlotExceptionRepository) watch(ctx context.Context, conn *pgxpool.Conn, sub *pgSubscription) {
	defer func() {
		if conn != nil {
			conn.Release()
		}
	}()

	delay := reconnectDelay
	for {
		if conn == nil {
			var err error
			conn, err = r.listen(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				r.logger.Warn("Failed to re-establish slot listener", zap.Error(err), zap.Duration("retry_in", delay))
				if !sleepCtx(ctx, delay) {
					return
				}
				delay = min(delay*2, maxReconnectLag)
				continue
			}
			delay = reconnectDelay
			// уведомления могли потеряться, пока соединения не было
			r.reload(ctx, sub)
		}

		_, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Warn("Slot listener connection lost", zap.Error(err))
			_ = conn.Conn().Close(context.Background())
			conn.Release()
			conn = nil
			continue
		}

		r.drain(ctx, conn)
		r.reload(ctx, sub)
	}
}

// drain схлопывает пачку уведомлений от одной транзакции в одну перезагрузку
func (r *SlotExceptionRepository) drain(ctx context.Context, conn *pgxpool.Conn) {
	for {
		waitCtx, cancel := context.WithTimeout(ctx, notifyDebounce)
		_, err := conn.Conn().WaitForNotification(waitCtx)
		cancel()
		if err != nil {
			return
		}
	}
}

func (r *SlotExceptionRepository) reload(ctx context.Context, sub *pgSubscription) {
	records, err := r.List(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Error("Failed to reload slot exceptions", zap.Error(err))
		}
		return
	}
	sub.deliver(records)
}

type pgSubscription struct {
	mu        sync.Mutex
	fn        SnapshotFunc
	stop      context.CancelFunc
	once      sync.Once
	cancelled atomic.Bool
	running   atomic.Bool
}

// deliver вызывает обработчик под mu, проверка отмены и вызов неразделимы
func (s *pgSubscription) deliver(records []model.SlotException) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled.Load() {
		return
	}
	s.running.Store(true)
	defer s.running.Store(false)
	s.fn(records)
}

// cancel дожидается доставки, начатой в другой горутине.
// Вызов из самого обработчика не ждёт, иначе mu захватывался бы повторно.
func (s *pgSubscription) cancel() {
	s.once.Do(func() {
		s.cancelled.Store(true)
		s.stop()
		if !s.running.Load() {
			s.mu.Lock()
			s.mu.Unlock()
		}
	})
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
