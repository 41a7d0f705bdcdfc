// Package admin — service.go содержит логику аутентификации,
// управления сессиями и админских операций.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"baitpond.ru/fishing-bot/internal/common"
	"baitpond.ru/fishing-bot/internal/config"
	"baitpond.ru/fishing-bot/internal/features/anglers"
	"baitpond.ru/fishing-bot/internal/features/catalog"
)

// Service управляет админ-панелью.
type Service struct {
	repo           *Repository
	anglerService  *anglers.Service
	catalogService *catalog.Service
	cfg            *config.Config
	states         map[int64]*DialogState
	statesMu       sync.RWMutex
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, anglerService *anglers.Service, catalogService *catalog.Service, cfg *config.Config) *Service {
	return &Service{
		repo:           repo,
		anglerService:  anglerService,
		catalogService: catalogService,
		cfg:            cfg,
		states:         make(map[int64]*DialogState),
	}
}

// IsAdmin проверяет по конфигу, входит ли пользователь в список админов.
func (s *Service) IsAdmin(userID int64) bool {
	for _, id := range s.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VerifyPassword проверяет пароль администратора (Argon2id).
// Защита от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.GetRecentAttempts(ctx, userID, 1*time.Hour)
	if err != nil {
		return err
	}
	if attempts >= 3 {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)
	s.repo.LogAttempt(ctx, userID, match)

	if !match {
		return common.ErrWrongPassword
	}

	token := generateSecureToken()
	session := &Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	if err != nil || session == nil {
		return false
	}
	s.repo.UpdateActivity(ctx, userID)
	return true
}

// Logout деактивирует сессии администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeactivateSession(ctx, userID)
}

// GetState возвращает текущее состояние диалога.
func (s *Service) GetState(userID int64) *DialogState {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &DialogState{
		State:     stateName,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// GrantBait выдаёт наживку рыбаку от имени администратора.
func (s *Service) GrantBait(ctx context.Context, adminID, anglerID int64, amount int) error {
	if err := s.anglerService.GrantBait(ctx, anglerID, amount); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"admin_id":  adminID,
		"angler_id": anglerID,
		"amount":    amount,
	}).Info("Админ выдал наживку")
	return nil
}

// ReloadCatalog перечитывает каталог рыбы из базы.
func (s *Service) ReloadCatalog(ctx context.Context) (int, error) {
	if err := s.catalogService.Load(ctx); err != nil {
		return 0, err
	}
	return s.catalogService.Snapshot().Len(), nil
}

// GetBotStats собирает сводку по боту.
func (s *Service) GetBotStats(ctx context.Context) (*BotStats, error) {
	return s.repo.GetBotStats(ctx)
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack).
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
