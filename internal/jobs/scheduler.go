// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневный бонус наживки
// и ежечасная перезагрузка каталога рыбы.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/features/anglers"
	"baitpond.ru/fishing-bot/internal/features/catalog"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron           *cron.Cron
	anglerService  *anglers.Service
	catalogService *catalog.Service
}

// NewScheduler создаёт планировщик задач с московским часовым поясом.
func NewScheduler(anglerService *anglers.Service, catalogService *catalog.Service) *Scheduler {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.WithError(err).Warn("Не удалось загрузить Europe/Moscow, используем UTC+3")
		loc = time.FixedZone("MSK", 3*60*60)
	}

	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:           c,
		anglerService:  anglerService,
		catalogService: catalogService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ежедневный бонус наживки в 09:00 по Москве
	s.cron.AddFunc("0 9 * * *", func() {
		log.Info("[CRON] Ежедневный бонус наживки")
		granted, err := s.anglerService.GrantDailyBonus(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка начисления бонуса")
			return
		}
		log.WithField("granted", granted).Info("[CRON] Бонус начислен")
	})

	// Перезагрузка каталога каждый час — подхватываем правки в базе
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Перезагрузка каталога рыбы")
		if err := s.catalogService.Load(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка перезагрузки каталога")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (Europe/Moscow)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
