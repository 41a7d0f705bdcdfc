package gear

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
)

// Store — обращения к хранилищу снаряжения, которые нужны сервису.
type Store interface {
	ListPonds(ctx context.Context) ([]Pond, error)
	GetPond(ctx context.Context, id int64) (*Pond, error)
	ListRods(ctx context.Context) ([]Rod, error)
	GetRod(ctx context.Context, id int64) (*Rod, error)
	ListOwnedRods(ctx context.Context, anglerID int64) ([]OwnedRod, error)
	GetActiveRod(ctx context.Context, anglerID int64) (*OwnedRod, error)
	Owns(ctx context.Context, anglerID, rodID int64) (bool, error)
	GrantRod(ctx context.Context, anglerID, rodID int64, makeActive bool) error
	SetActiveRod(ctx context.Context, anglerID, rodID int64) error
}

// BaitLedger — операции с наживкой как валютой магазина.
type BaitLedger interface {
	SpendBait(ctx context.Context, telegramID int64, amount int) error
	GrantBait(ctx context.Context, telegramID int64, amount int) error
}

// Service реализует бизнес-логику снаряжения: доступ к прудам,
// магазин удочек, смена активной удочки.
type Service struct {
	repo Store
	bait BaitLedger
}

// NewService создаёт сервис снаряжения.
func NewService(repo Store, bait BaitLedger) *Service {
	return &Service{repo: repo, bait: bait}
}

// ListPonds возвращает все пруды.
func (s *Service) ListPonds(ctx context.Context) ([]Pond, error) {
	return s.repo.ListPonds(ctx)
}

// GetPond возвращает пруд без проверки уровня.
func (s *Service) GetPond(ctx context.Context, pondID int64) (*Pond, error) {
	return s.repo.GetPond(ctx, pondID)
}

// GetPondForAngler возвращает пруд, проверяя уровень рыбака.
func (s *Service) GetPondForAngler(ctx context.Context, pondID int64, level int) (*Pond, error) {
	pond, err := s.repo.GetPond(ctx, pondID)
	if err != nil {
		return nil, err
	}
	if !pond.Available(level) {
		return nil, common.ErrPondLocked
	}
	return pond, nil
}

// ListRods возвращает каталог удочек.
func (s *Service) ListRods(ctx context.Context) ([]Rod, error) {
	return s.repo.ListRods(ctx)
}

// ListOwnedRods возвращает снаряжение рыбака.
func (s *Service) ListOwnedRods(ctx context.Context, anglerID int64) ([]OwnedRod, error) {
	return s.repo.ListOwnedRods(ctx, anglerID)
}

// EnsureStarterRod выдаёт стартовую удочку, если у рыбака пустое
// снаряжение. Вызывается перед первым забросом.
func (s *Service) EnsureStarterRod(ctx context.Context, anglerID int64) (*OwnedRod, error) {
	active, err := s.repo.GetActiveRod(ctx, anglerID)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, common.ErrRodNotOwned) {
		return nil, err
	}

	rods, err := s.repo.ListRods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rods {
		if rods[i].Starter() {
			if err := s.repo.GrantRod(ctx, anglerID, rods[i].ID, true); err != nil {
				return nil, err
			}
			log.WithFields(log.Fields{
				"angler_id": anglerID,
				"rod_id":    rods[i].ID,
			}).Info("Выдана стартовая удочка")
			return s.repo.GetActiveRod(ctx, anglerID)
		}
	}
	return nil, common.ErrRodNotFound
}

// BuyRod покупает удочку за наживку и сразу делает её активной.
// Если после списания наживки выдать удочку не удалось,
// списанная наживка возвращается.
func (s *Service) BuyRod(ctx context.Context, anglerID, rodID int64) (*Rod, error) {
	rod, err := s.repo.GetRod(ctx, rodID)
	if err != nil {
		return nil, err
	}

	owned, err := s.repo.Owns(ctx, anglerID, rodID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, common.ErrRodAlreadyOwned
	}

	if rod.Price > 0 {
		if err := s.bait.SpendBait(ctx, anglerID, rod.Price); err != nil {
			return nil, err
		}
	}

	if err := s.repo.GrantRod(ctx, anglerID, rodID, false); err != nil {
		log.WithError(err).WithField("angler_id", anglerID).Error("Ошибка выдачи купленной удочки")
		if rod.Price > 0 {
			if refundErr := s.bait.GrantBait(ctx, anglerID, rod.Price); refundErr != nil {
				log.WithError(refundErr).WithFields(log.Fields{
					"angler_id": anglerID,
					"amount":    rod.Price,
				}).Error("Не удалось вернуть наживку за несостоявшуюся покупку")
			}
		}
		return nil, err
	}

	// Удочка уже куплена и выдана — ошибка смены активной не отменяет покупку
	if err := s.repo.SetActiveRod(ctx, anglerID, rodID); err != nil {
		log.WithError(err).WithField("angler_id", anglerID).Warn("Купленную удочку не удалось сделать активной")
	}

	log.WithFields(log.Fields{
		"angler_id": anglerID,
		"rod_id":    rodID,
		"price":     rod.Price,
	}).Info("Куплена удочка")
	return rod, nil
}

// SetActiveRod делает купленную удочку активной.
func (s *Service) SetActiveRod(ctx context.Context, anglerID, rodID int64) error {
	return s.repo.SetActiveRod(ctx, anglerID, rodID)
}
