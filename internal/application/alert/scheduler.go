package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Scanner lo que el scheduler necesita del caso de uso.
type Scanner interface {
	Scan(ctx context.Context) (int, error)
}

// Scheduler ejecuta Scan cada Interval mientras el contexto esté vivo.
type Scheduler struct {
	scanner  Scanner
	lock     Lock
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler valida dependencias. Sin lock se usa un LocalLock.
func NewScheduler(scanner Scanner, lock Lock, interval time.Duration, log *logger.Logger) (*Scheduler, error) {
	if scanner == nil {
		return nil, errors.New("scheduler: scanner requerido")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: intervalo inválido %s", interval)
	}
	if lock == nil {
		lock = &LocalLock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{scanner: scanner, lock: lock, interval: interval, log: log}, nil
}

// Run hace un primer escaneo inmediato y luego uno por tick. Devuelve ctx.Err() al cancelar.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler de alertas detenido")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudo adquirir el lock de escaneo")
		return
	}
	if !locked {
		s.log.Debug().Msg("otra instancia está escaneando; se omite el ciclo")
		return
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.log.Error().Err(err).Msg("no se pudo liberar el lock de escaneo")
		}
	}()

	created, err := s.scanner.Scan(ctx)
	if err != nil {
		return
	}
	if created > 0 {
		s.log.Info().Int("created", created).Msg("alertas de stock bajo creadas")
	}
}
