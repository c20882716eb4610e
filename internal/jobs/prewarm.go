package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

// prewarmDays: сколько дней вперед прогревается кэш занятости (включая сегодня)
const prewarmDays = 3

// CalendarClient интерфейс адаптера календаря для прогрева кэша
type CalendarClient interface {
	GetBusy(ctx context.Context, date string) []interval.Interval
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Prewarmer: периодический прогрев freebusy-кэша внешнего календаря.
// Идёт по пути просмотра (кэшируемому), никогда по свежему пути записи.
// Вне пути запроса: сбой прогрева ни на что не влияет, кэш догреется
// первым же просмотром.
type Prewarmer struct {
	calendar CalendarClient
	location *time.Location
	schedule string
	logger   Logger

	cron *cron.Cron
}

// NewPrewarmer создает джобу прогрева с cron-расписанием
func NewPrewarmer(calendar CalendarClient, location *time.Location, schedule string, logger Logger) *Prewarmer {
	return &Prewarmer{
		calendar: calendar,
		location: location,
		schedule: schedule,
		logger:   logger,
	}
}

// Start регистрирует расписание и запускает планировщик
func (p *Prewarmer) Start() error {
	p.cron = cron.New()

	if _, err := p.cron.AddFunc(p.schedule, p.run); err != nil {
		return err
	}

	p.cron.Start()
	p.logger.Info("prewarm: scheduled %q", p.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (p *Prewarmer) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
}

// run прогревает кэш на сегодня и ближайшие дни
func (p *Prewarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := types.Midnight(time.Now().In(p.location))
	for i := 0; i < prewarmDays; i++ {
		date := today.AddDate(0, 0, i).Format(types.DateFormat)
		busy := p.calendar.GetBusy(ctx, date)
		p.logger.Info("prewarm: %s: %d busy interval(s)", date, len(busy))
	}
}
