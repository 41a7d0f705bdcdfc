package anglers

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
	"baitpond.ru/fishing-bot/internal/config"
)

// Service реализует бизнес-логику рыбаков: регистрация, наживка, опыт.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт сервис рыбаков.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Ensure возвращает рыбака, регистрируя его при первом обращении.
// Профиль (username, имя) обновляется по пути.
func (s *Service) Ensure(ctx context.Context, telegramID int64, username, firstName string) (*Angler, error) {
	a, err := s.repo.Get(ctx, telegramID)
	if errors.Is(err, common.ErrAnglerNotFound) {
		if err := s.repo.Create(ctx, telegramID, username, firstName, s.cfg.FishingStartBait); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"telegram_id": telegramID,
			"username":    username,
		}).Info("Зарегистрирован новый рыбак")
		return s.repo.Get(ctx, telegramID)
	}
	if err != nil {
		return nil, err
	}
	if a.Username != username || a.FirstName != firstName {
		if err := s.repo.UpdateProfile(ctx, telegramID, username, firstName); err != nil {
			log.WithError(err).Warn("Не удалось обновить профиль рыбака")
		}
		a.Username = username
		a.FirstName = firstName
	}
	return a, nil
}

// Get возвращает рыбака по Telegram ID.
func (s *Service) Get(ctx context.Context, telegramID int64) (*Angler, error) {
	return s.repo.Get(ctx, telegramID)
}

// UseBait списывает одну наживку перед забросом.
func (s *Service) UseBait(ctx context.Context, telegramID int64) error {
	return s.repo.UseBait(ctx, telegramID)
}

// RefundBait возвращает одну наживку (сорвавшийся заброс).
func (s *Service) RefundBait(ctx context.Context, telegramID int64) error {
	return s.repo.AddBait(ctx, telegramID, 1)
}

// GrantBait начисляет наживку рыбаку (админская команда).
func (s *Service) GrantBait(ctx context.Context, telegramID int64, amount int) error {
	return s.repo.AddBait(ctx, telegramID, amount)
}

// SpendBait списывает наживку как валюту (покупки в магазине).
func (s *Service) SpendBait(ctx context.Context, telegramID int64, amount int) error {
	return s.repo.SpendBait(ctx, telegramID, amount)
}

// AwardExperience начисляет опыт за улов и сохраняет прогресс.
// Возвращает количество полученных уровней (обычно 0 или 1).
func (s *Service) AwardExperience(ctx context.Context, a *Angler, xp int) (int, error) {
	levelsGained := a.ApplyExperience(xp)
	if err := s.repo.SaveProgress(ctx, a.TelegramID, a.Level, a.Experience); err != nil {
		return 0, err
	}
	if levelsGained > 0 {
		log.WithFields(log.Fields{
			"telegram_id": a.TelegramID,
			"level":       a.Level,
		}).Info("Рыбак получил новый уровень")
	}
	return levelsGained, nil
}

// GrantDailyBonus начисляет ежедневный бонус наживки малоимущим.
func (s *Service) GrantDailyBonus(ctx context.Context) (int, error) {
	return s.repo.GrantDailyBaitBonus(ctx, s.cfg.FishingDailyBaitBonus, s.cfg.FishingBaitThreshold)
}
