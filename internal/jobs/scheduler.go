package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout ограничение времени одного запуска задачи
const DefaultJobTimeout = 5 * time.Minute

// Job фоновая задача
type Job func(ctx context.Context) error

// Scheduler запускает фоновые задачи по cron-расписанию
type Scheduler struct {
	cron    *cron.Cron
	logger  Logger
	timeout time.Duration
}

// NewScheduler создает планировщик. Паника внутри задачи логируется и не роняет процесс,
// повторный запуск не начинается, пока не закончился предыдущий.
func NewScheduler(logger Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(printfAdapter{logger: logger})

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:  logger,
		timeout: DefaultJobTimeout,
	}
}

// Add регистрирует задачу. Пустое расписание отключает задачу.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if spec == "" {
		s.logger.Info("Jobs: %s disabled", name)
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.Run(name, job) }); err != nil {
		return fmt.Errorf("jobs: invalid schedule %q for %s: %w", spec, name, err)
	}

	s.logger.Info("Jobs: %s scheduled (%s)", name, spec)
	return nil
}

// Run выполняет задачу один раз с таймаутом
func (s *Scheduler) Run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("Jobs: %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	s.logger.Info("Jobs: %s finished in %s", name, time.Since(start))
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач, но не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Jobs: stop timed out, running jobs are abandoned")
	}
}

// printfAdapter пишет ошибки cron в логгер сервиса
type printfAdapter struct {
	logger Logger
}

func (a printfAdapter) Printf(format string, v ...interface{}) {
	a.logger.Warn("cron: "+format, v...)
}
