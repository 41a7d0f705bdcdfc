// Package anglers — repository.go выполняет операции с таблицей anglers.
// Операции с наживкой идут в транзакциях с блокировкой строки,
// чтобы параллельные забросы не ушли в минус.
package anglers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"baitpond.ru/fishing-bot/internal/common"
)

// Repository предоставляет методы для работы с рыбаками.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий рыбаков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Get возвращает рыбака по Telegram ID.
func (r *Repository) Get(ctx context.Context, telegramID int64) (*Angler, error) {
	query := `
		SELECT telegram_id, username, first_name, bait_tokens, level, experience, created_at, updated_at
		FROM anglers
		WHERE telegram_id = $1
	`
	var a Angler
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&a.TelegramID, &a.Username, &a.FirstName,
		&a.BaitTokens, &a.Level, &a.Experience,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrAnglerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рыбака: %w", err)
	}
	return &a, nil
}

// Create регистрирует нового рыбака со стартовым запасом наживки.
func (r *Repository) Create(ctx context.Context, telegramID int64, username, firstName string, startBait int) error {
	query := `
		INSERT INTO anglers (telegram_id, username, first_name, bait_tokens, level, experience)
		VALUES ($1, $2, $3, $4, 1, 0)
		ON CONFLICT (telegram_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, telegramID, username, firstName, startBait)
	if err != nil {
		return fmt.Errorf("ошибка создания рыбака: %w", err)
	}
	return nil
}

// UpdateProfile обновляет username/имя (люди их меняют).
func (r *Repository) UpdateProfile(ctx context.Context, telegramID int64, username, firstName string) error {
	query := `
		UPDATE anglers
		SET username = $2, first_name = $3, updated_at = NOW()
		WHERE telegram_id = $1 AND (username IS DISTINCT FROM $2 OR first_name IS DISTINCT FROM $3)
	`
	_, err := r.db.Exec(ctx, query, telegramID, username, firstName)
	return err
}

// UseBait списывает одну наживку. Возвращает common.ErrNoBait,
// если запас пуст — проверка и списание атомарны.
func (r *Repository) UseBait(ctx context.Context, telegramID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE anglers
		SET bait_tokens = bait_tokens - 1, updated_at = NOW()
		WHERE telegram_id = $1 AND bait_tokens > 0
	`, telegramID)
	if err != nil {
		return fmt.Errorf("ошибка списания наживки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNoBait
	}
	return nil
}

// AddBait начисляет наживку (бонусы, возвраты, выдача админом).
func (r *Repository) AddBait(ctx context.Context, telegramID int64, amount int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE anglers
		SET bait_tokens = bait_tokens + $2, updated_at = NOW()
		WHERE telegram_id = $1
	`, telegramID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления наживки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAnglerNotFound
	}
	return nil
}

// SpendBait списывает произвольное количество наживки (покупка удочки).
// Списание атомарно: баланс проверяется с блокировкой строки.
func (r *Repository) SpendBait(ctx context.Context, telegramID int64, amount int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx, `
		SELECT bait_tokens FROM anglers WHERE telegram_id = $1 FOR UPDATE
	`, telegramID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrAnglerNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}

	if current < amount {
		return common.ErrInsufficientBait
	}

	_, err = tx.Exec(ctx, `
		UPDATE anglers SET bait_tokens = bait_tokens - $2, updated_at = NOW()
		WHERE telegram_id = $1
	`, telegramID, amount)
	if err != nil {
		return fmt.Errorf("ошибка списания: %w", err)
	}

	return tx.Commit(ctx)
}

// SaveProgress записывает уровень и опыт после улова.
func (r *Repository) SaveProgress(ctx context.Context, telegramID int64, level, experience int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE anglers SET level = $2, experience = $3, updated_at = NOW()
		WHERE telegram_id = $1
	`, telegramID, level, experience)
	if err != nil {
		return fmt.Errorf("ошибка записи прогресса: %w", err)
	}
	return nil
}

// GrantDailyBaitBonus начисляет бонус всем рыбакам с запасом ниже порога.
// Возвращает число облагодетельствованных.
func (r *Repository) GrantDailyBaitBonus(ctx context.Context, bonus, threshold int) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE anglers
		SET bait_tokens = bait_tokens + $1, updated_at = NOW()
		WHERE bait_tokens < $2
	`, bonus, threshold)
	if err != nil {
		return 0, fmt.Errorf("ошибка начисления бонуса: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
