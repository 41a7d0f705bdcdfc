package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет метод построения рейтинга.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий рейтинга.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Top возвращает лучших рыбаков по числу уловов.
// При равенстве уловов выше тот, у кого лучше P&L.
func (r *Repository) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.telegram_id, a.username, a.first_name, a.level,
		       COUNT(p.fish_id) AS catches,
		       MAX(p.pnl_percent) FILTER (WHERE p.fish_id IS NOT NULL) AS best_pnl
		FROM anglers a
		JOIN positions p ON p.angler_id = a.telegram_id AND p.closed_at IS NOT NULL
		GROUP BY a.telegram_id, a.username, a.first_name, a.level
		HAVING COUNT(p.fish_id) > 0
		ORDER BY catches DESC, best_pnl DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения рейтинга: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TelegramID, &e.Username, &e.FirstName, &e.Level, &e.Catches, &e.BestPnL); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки рейтинга: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
