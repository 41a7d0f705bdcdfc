package fishing

import (
	"context"
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
	"baitpond.ru/fishing-bot/internal/config"
	"baitpond.ru/fishing-bot/internal/features/anglers"
	"baitpond.ru/fishing-bot/internal/features/catalog"
	"baitpond.ru/fishing-bot/internal/features/gear"
	"baitpond.ru/fishing-bot/internal/prices"
)

// Service реализует цикл рыбалки: заброс, статус, подсечка.
type Service struct {
	repo           *Repository
	anglerService  *anglers.Service
	gearService    *gear.Service
	catalogService *catalog.Service
	priceClient    *prices.Client
	cfg            *config.Config
}

// NewService создаёт сервис рыбалки.
func NewService(
	repo *Repository,
	anglerService *anglers.Service,
	gearService *gear.Service,
	catalogService *catalog.Service,
	priceClient *prices.Client,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:           repo,
		anglerService:  anglerService,
		gearService:    gearService,
		catalogService: catalogService,
		priceClient:    priceClient,
		cfg:            cfg,
	}
}

// Cast открывает позицию в выбранном пруду за одну наживку.
// Плечо берётся из активной удочки, цена входа — из котировки пруда.
func (s *Service) Cast(ctx context.Context, telegramID int64, username, firstName string, pondID int64) (*Position, *gear.Pond, error) {
	a, err := s.anglerService.Ensure(ctx, telegramID, username, firstName)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.repo.GetActive(ctx, telegramID); err == nil {
		return nil, nil, common.ErrAlreadyFishing
	} else if !errors.Is(err, common.ErrNotFishing) {
		return nil, nil, err
	}

	pond, err := s.gearService.GetPondForAngler(ctx, pondID, a.Level)
	if err != nil {
		return nil, nil, err
	}

	rod, err := s.gearService.EnsureStarterRod(ctx, telegramID)
	if err != nil {
		return nil, nil, err
	}

	entryPrice, err := s.priceClient.GetPrice(ctx, pond.Currency)
	if err != nil {
		return nil, nil, err
	}

	if err := s.anglerService.UseBait(ctx, telegramID); err != nil {
		return nil, nil, err
	}

	p := &Position{
		AnglerID:   telegramID,
		PondID:     pond.ID,
		RodID:      rod.ID,
		Pair:       pond.Pair,
		EntryPrice: entryPrice,
		Leverage:   rod.Leverage,
		OpenedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Наживка потрачена, заброс не состоялся — возвращаем.
		if refundErr := s.anglerService.RefundBait(ctx, telegramID); refundErr != nil {
			log.WithError(refundErr).WithField("telegram_id", telegramID).Error("Не удалось вернуть наживку")
		}
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"telegram_id": telegramID,
		"pond_id":     pond.ID,
		"pair":        pond.Pair,
		"entry_price": entryPrice,
		"leverage":    rod.Leverage,
	}).Info("Заброс выполнен")
	return p, pond, nil
}

// Status возвращает открытую позицию с текущим нереализованным P&L.
func (s *Service) Status(ctx context.Context, telegramID int64) (*Position, float64, error) {
	p, err := s.repo.GetActive(ctx, telegramID)
	if err != nil {
		return nil, 0, err
	}

	pond, err := s.gearService.GetPond(ctx, p.PondID)
	if err != nil {
		return nil, 0, err
	}

	current, err := s.priceClient.GetPrice(ctx, pond.Currency)
	if err != nil {
		return nil, 0, err
	}

	return p, CalcPnLPercent(p.EntryPrice, current, p.Leverage), nil
}

// Hook закрывает позицию и подбирает улов по итоговому P&L.
// Слишком ранняя подсечка при почти нулевом движении отклоняется —
// позиция остаётся открытой, наживка не сгорает впустую.
func (s *Service) Hook(ctx context.Context, telegramID int64) (*CatchResult, error) {
	a, err := s.anglerService.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetActive(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	pond, err := s.gearService.GetPond(ctx, p.PondID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	duration := now.Sub(p.OpenedAt)

	exitPrice, err := s.priceClient.GetPrice(ctx, pond.Currency)
	if err != nil {
		return nil, err
	}
	pnl := CalcPnLPercent(p.EntryPrice, exitPrice, p.Leverage)

	if duration < time.Duration(s.cfg.FishingQuickSeconds)*time.Second &&
		math.Abs(pnl) < s.cfg.FishingQuickPnL {
		return nil, common.ErrTooEarlyToHook
	}

	selCtx := catalog.Context{
		PnLPercent: pnl,
		UserLevel:  a.Level,
		PondID:     p.PondID,
		RodID:      p.RodID,
	}
	fish, caught := s.catalogService.SelectCatch(selCtx)

	var fishID *int64
	if caught {
		fishID = &fish.ID
	}
	if err := s.repo.Close(ctx, p.ID, exitPrice, pnl, fishID, now); err != nil {
		return nil, err
	}

	result := &CatchResult{
		Fish:       fish,
		PnLPercent: pnl,
		Duration:   duration,
	}
	if caught {
		result.XP = s.cfg.FishingXPPerCatch + int(fish.Rarity)*s.cfg.FishingXPRarityStep
		levels, err := s.anglerService.AwardExperience(ctx, a, result.XP)
		if err != nil {
			log.WithError(err).WithField("telegram_id", telegramID).Error("Ошибка начисления опыта")
		} else {
			result.LevelsGained = levels
			result.NewLevel = a.Level
		}
	}

	log.WithFields(log.Fields{
		"telegram_id": telegramID,
		"pnl_percent": pnl,
		"caught":      caught,
		"duration":    duration.Round(time.Second).String(),
	}).Info("Подсечка выполнена")
	return result, nil
}

// Stats возвращает сводку уловов рыбака.
func (s *Service) Stats(ctx context.Context, telegramID int64) (*CatchStats, error) {
	return s.repo.Stats(ctx, telegramID)
}
