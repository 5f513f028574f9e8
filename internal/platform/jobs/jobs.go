// Package jobs agenda tareas de mantenimiento periódicas con gocron.
package jobs

import (
	"context"
	"fmt"
	"time"

	"clinic-medications/internal/platform/logger"

	"github.com/go-co-op/gocron"
)

// Task es una tarea de mantenimiento. El contexto se cancela con Stop.
type Task func(ctx context.Context) error

type Scheduler struct {
	s      *gocron.Scheduler
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()
	return &Scheduler{s: s, log: log, ctx: ctx, cancel: cancel}
}

// Every agenda task cada interval. La primera ejecución es al arrancar.
func (s *Scheduler) Every(interval time.Duration, name string, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}
	_, err := s.s.Every(interval).Tag(name).Do(func() {
		start := time.Now()
		if err := task(s.ctx); err != nil {
			s.log.Error("job failed", map[string]any{"job": name, "error": err})
			return
		}
		s.log.Debug("job done", map[string]any{"job": name, "duration_ms": time.Since(start).Milliseconds()})
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.s.StartAsync()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.s.Stop()
}

// Len devuelve la cantidad de tareas agendadas.
func (s *Scheduler) Len() int {
	return s.s.Len()
}
