// Package catalog — repository.go загружает каталог рыбы из таблицы fish.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository читает каталог рыбы из БД.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий каталога.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LoadAll читает все записи каталога.
// Требования к прудам/удочкам парсятся из текстовых полей здесь,
// один раз на загрузку — в момент улова никакого парсинга нет.
func (r *Repository) LoadAll(ctx context.Context) ([]Fish, error) {
	query := `
		SELECT id, name, emoji, description, min_pnl, max_pnl, min_level,
		       required_ponds, required_rods, rarity, story_template, image_prompt,
		       created_at
		FROM fish
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	defer rows.Close()

	var items []Fish
	for rows.Next() {
		var (
			f             Fish
			rarityRaw     string
			requiredPonds string
			requiredRods  string
		)
		err := rows.Scan(
			&f.ID, &f.Name, &f.Emoji, &f.Description,
			&f.MinPnL, &f.MaxPnL, &f.MinLevel,
			&requiredPonds, &requiredRods, &rarityRaw,
			&f.StoryTemplate, &f.ImagePrompt, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования рыбы: %w", err)
		}
		f.Rarity = ParseRarity(rarityRaw)
		f.RequiredPonds = ParseIDSet(requiredPonds)
		f.RequiredRods = ParseIDSet(requiredRods)
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода каталога: %w", err)
	}
	return items, nil
}

// GetByID возвращает одну рыбу по ID (для карточек старых уловов).
func (r *Repository) GetByID(ctx context.Context, fishID int64) (*Fish, error) {
	query := `
		SELECT id, name, emoji, description, min_pnl, max_pnl, min_level,
		       required_ponds, required_rods, rarity, story_template, image_prompt,
		       created_at
		FROM fish
		WHERE id = $1
	`
	var (
		f             Fish
		rarityRaw     string
		requiredPonds string
		requiredRods  string
	)
	err := r.db.QueryRow(ctx, query, fishID).Scan(
		&f.ID, &f.Name, &f.Emoji, &f.Description,
		&f.MinPnL, &f.MaxPnL, &f.MinLevel,
		&requiredPonds, &requiredRods, &rarityRaw,
		&f.StoryTemplate, &f.ImagePrompt, &f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("рыба %d не найдена: %w", fishID, err)
	}
	f.Rarity = ParseRarity(rarityRaw)
	f.RequiredPonds = ParseIDSet(requiredPonds)
	f.RequiredRods = ParseIDSet(requiredRods)
	return &f, nil
}
