package leaderboard

import "context"

// topSize — сколько рыбаков показываем в рейтинге.
const topSize = 10

// Service реализует бизнес-логику рейтинга.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис рейтинга.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Top возвращает десятку лучших рыбаков.
func (s *Service) Top(ctx context.Context) ([]Entry, error) {
	return s.repo.Top(ctx, topSize)
}
