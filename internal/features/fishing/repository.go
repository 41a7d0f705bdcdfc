package fishing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"baitpond.ru/fishing-bot/internal/common"
)

// Repository предоставляет методы для работы с позициями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий позиций.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetActive возвращает открытую позицию рыбака.
func (r *Repository) GetActive(ctx context.Context, anglerID int64) (*Position, error) {
	var p Position
	err := r.db.QueryRow(ctx, `
		SELECT id, angler_id, pond_id, rod_id, pair, entry_price, leverage,
		       opened_at, closed_at, exit_price, pnl_percent, fish_id
		FROM positions
		WHERE angler_id = $1 AND closed_at IS NULL
	`, anglerID).Scan(
		&p.ID, &p.AnglerID, &p.PondID, &p.RodID, &p.Pair, &p.EntryPrice, &p.Leverage,
		&p.OpenedAt, &p.ClosedAt, &p.ExitPrice, &p.PnLPercent, &p.FishID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFishing
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиции: %w", err)
	}
	return &p, nil
}

// Create открывает позицию. Частичный уникальный индекс по
// (angler_id) WHERE closed_at IS NULL не даст открыть вторую.
func (r *Repository) Create(ctx context.Context, p *Position) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO positions (angler_id, pond_id, rod_id, pair, entry_price, leverage, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.AnglerID, p.PondID, p.RodID, p.Pair, p.EntryPrice, p.Leverage, p.OpenedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyFishing
		}
		return fmt.Errorf("ошибка открытия позиции: %w", err)
	}
	return nil
}

// Close закрывает позицию, фиксируя цену выхода, P&L и улов.
func (r *Repository) Close(ctx context.Context, positionID int64, exitPrice, pnlPercent float64, fishID *int64, closedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE positions
		SET closed_at = $2, exit_price = $3, pnl_percent = $4, fish_id = $5
		WHERE id = $1 AND closed_at IS NULL
	`, positionID, closedAt, exitPrice, pnlPercent, fishID)
	if err != nil {
		return fmt.Errorf("ошибка закрытия позиции: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFishing
	}
	return nil
}

// CatchStats — сводка уловов рыбака.
type CatchStats struct {
	TotalCasts   int
	TotalCatches int
	BestPnL      *float64
}

// Stats возвращает сводку по закрытым позициям рыбака.
func (r *Repository) Stats(ctx context.Context, anglerID int64) (*CatchStats, error) {
	var s CatchStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(fish_id),
		       MAX(pnl_percent) FILTER (WHERE fish_id IS NOT NULL)
		FROM positions
		WHERE angler_id = $1 AND closed_at IS NOT NULL
	`, anglerID).Scan(&s.TotalCasts, &s.TotalCatches, &s.BestPnL)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики: %w", err)
	}
	return &s, nil
}

// isUniqueViolation распознаёт нарушение уникального индекса (23505).
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
