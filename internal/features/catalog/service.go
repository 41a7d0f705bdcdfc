// Package catalog — service.go держит актуальный снимок каталога
// и координирует его обновление.
package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/config"
)

// Service управляет каталогом рыбы: загрузка при старте,
// atomic-подмена снимка при обновлении, выбор улова.
type Service struct {
	repo     *Repository
	weights  WeightTable
	snapshot atomic.Pointer[Snapshot]
	rng      RandSource
}

// NewService создаёт сервис каталога. Таблица весов собирается из конфига.
// Каталог НЕ загружается здесь — вызовите Load перед первым использованием.
func NewService(repo *Repository, cfg *config.Config) *Service {
	weights := WeightTable{
		RarityTrash:     cfg.RarityWeightTrash,
		RarityCommon:    cfg.RarityWeightCommon,
		RarityRare:      cfg.RarityWeightRare,
		RarityEpic:      cfg.RarityWeightEpic,
		RarityLegendary: cfg.RarityWeightLegendary,
	}
	return &Service{
		repo:    repo,
		weights: weights,
		rng:     NewLockedRand(time.Now().UnixNano()),
	}
}

// Load загружает каталог из БД и публикует новый снимок.
// Вызывается при старте и по расписанию/команде админа.
// При ошибке старый снимок остаётся действующим.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("загрузка каталога: %w", err)
	}

	snap, err := NewSnapshot(items, s.weights)
	if err != nil {
		return fmt.Errorf("валидация каталога: %w", err)
	}

	s.snapshot.Store(snap)
	log.WithField("fish_count", snap.Len()).Info("Каталог рыбы загружен")
	return nil
}

// Snapshot возвращает текущий снимок каталога.
// Паникует, если Load ни разу не вызывался — это ошибка порядка
// инициализации в app.New, её нельзя маскировать.
func (s *Service) Snapshot() *Snapshot {
	snap := s.snapshot.Load()
	if snap == nil {
		panic("catalog: Snapshot() до первого Load()")
	}
	return snap
}

// SelectCatch выбирает улов для данных условий по актуальному снимку.
// Возвращает (nil, false), если P&L не попадает ни в один диапазон
// каталога даже после fallback — вызывающий решает, что показать.
func (s *Service) SelectCatch(selCtx Context) (*Fish, bool) {
	fish, ok := s.Snapshot().Select(selCtx, s.rng)
	if !ok {
		log.WithFields(log.Fields{
			"pnl":   selCtx.PnLPercent,
			"level": selCtx.UserLevel,
			"pond":  selCtx.PondID,
			"rod":   selCtx.RodID,
		}).Warn("Ни одна рыба не подошла даже после fallback")
	}
	return fish, ok
}

// GetByID возвращает рыбу по ID из БД (не из снимка: нужна и та рыба,
// которую из каталога уже убрали, но она есть в старых уловах).
func (s *Service) GetByID(ctx context.Context, fishID int64) (*Fish, error) {
	return s.repo.GetByID(ctx, fishID)
}
