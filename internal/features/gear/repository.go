package gear

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"baitpond.ru/fishing-bot/internal/common"
)

// Repository предоставляет методы для работы с прудами и удочками.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий снаряжения.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListPonds возвращает все пруды по возрастанию минимального уровня.
func (r *Repository) ListPonds(ctx context.Context) ([]Pond, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, emoji, pair, currency, min_level, created_at
		FROM ponds
		ORDER BY min_level, id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения прудов: %w", err)
	}
	defer rows.Close()

	var ponds []Pond
	for rows.Next() {
		var p Pond
		if err := rows.Scan(&p.ID, &p.Name, &p.Emoji, &p.Pair, &p.Currency, &p.MinLevel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения пруда: %w", err)
		}
		ponds = append(ponds, p)
	}
	return ponds, rows.Err()
}

// GetPond возвращает пруд по ID.
func (r *Repository) GetPond(ctx context.Context, id int64) (*Pond, error) {
	var p Pond
	err := r.db.QueryRow(ctx, `
		SELECT id, name, emoji, pair, currency, min_level, created_at
		FROM ponds WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Emoji, &p.Pair, &p.Currency, &p.MinLevel, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrPondNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пруда: %w", err)
	}
	return &p, nil
}

// ListRods возвращает весь каталог удочек по возрастанию цены.
func (r *Repository) ListRods(ctx context.Context) ([]Rod, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, emoji, leverage, price, created_at
		FROM rods
		ORDER BY price, id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения удочек: %w", err)
	}
	defer rows.Close()

	var rods []Rod
	for rows.Next() {
		var rod Rod
		if err := rows.Scan(&rod.ID, &rod.Name, &rod.Emoji, &rod.Leverage, &rod.Price, &rod.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения удочки: %w", err)
		}
		rods = append(rods, rod)
	}
	return rods, rows.Err()
}

// GetRod возвращает удочку по ID.
func (r *Repository) GetRod(ctx context.Context, id int64) (*Rod, error) {
	var rod Rod
	err := r.db.QueryRow(ctx, `
		SELECT id, name, emoji, leverage, price, created_at
		FROM rods WHERE id = $1
	`, id).Scan(&rod.ID, &rod.Name, &rod.Emoji, &rod.Leverage, &rod.Price, &rod.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrRodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения удочки: %w", err)
	}
	return &rod, nil
}

// ListOwnedRods возвращает удочки рыбака.
func (r *Repository) ListOwnedRods(ctx context.Context, anglerID int64) ([]OwnedRod, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.emoji, r.leverage, r.price, r.created_at, ar.active, ar.acquired_at
		FROM angler_rods ar
		JOIN rods r ON r.id = ar.rod_id
		WHERE ar.angler_id = $1
		ORDER BY r.price, r.id
	`, anglerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения снаряжения: %w", err)
	}
	defer rows.Close()

	var rods []OwnedRod
	for rows.Next() {
		var or OwnedRod
		if err := rows.Scan(&or.ID, &or.Name, &or.Emoji, &or.Leverage, &or.Price, &or.CreatedAt, &or.Active, &or.AcquiredAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения снаряжения: %w", err)
		}
		rods = append(rods, or)
	}
	return rods, rows.Err()
}

// GetActiveRod возвращает активную удочку рыбака.
func (r *Repository) GetActiveRod(ctx context.Context, anglerID int64) (*OwnedRod, error) {
	var or OwnedRod
	err := r.db.QueryRow(ctx, `
		SELECT r.id, r.name, r.emoji, r.leverage, r.price, r.created_at, ar.active, ar.acquired_at
		FROM angler_rods ar
		JOIN rods r ON r.id = ar.rod_id
		WHERE ar.angler_id = $1 AND ar.active
	`, anglerID).Scan(&or.ID, &or.Name, &or.Emoji, &or.Leverage, &or.Price, &or.CreatedAt, &or.Active, &or.AcquiredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrRodNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активной удочки: %w", err)
	}
	return &or, nil
}

// Owns сообщает, есть ли удочка у рыбака.
func (r *Repository) Owns(ctx context.Context, anglerID, rodID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM angler_rods WHERE angler_id = $1 AND rod_id = $2)
	`, anglerID, rodID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки владения: %w", err)
	}
	return exists, nil
}

// GrantRod выдаёт удочку рыбаку. Первая удочка становится активной.
func (r *Repository) GrantRod(ctx context.Context, anglerID, rodID int64, makeActive bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO angler_rods (angler_id, rod_id, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (angler_id, rod_id) DO NOTHING
	`, anglerID, rodID, makeActive)
	if err != nil {
		return fmt.Errorf("ошибка выдачи удочки: %w", err)
	}
	return nil
}

// SetActiveRod делает удочку активной, снимая флаг с остальных.
// Обе операции идут в одной транзакции.
func (r *Repository) SetActiveRod(ctx context.Context, anglerID, rodID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE angler_rods SET active = FALSE WHERE angler_id = $1
	`, anglerID); err != nil {
		return fmt.Errorf("ошибка сброса активной удочки: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE angler_rods SET active = TRUE WHERE angler_id = $1 AND rod_id = $2
	`, anglerID, rodID)
	if err != nil {
		return fmt.Errorf("ошибка смены удочки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrRodNotOwned
	}

	return tx.Commit(ctx)
}
