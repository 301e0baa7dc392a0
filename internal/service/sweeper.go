package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically purges expired blacklist rows. One instance runs per
// process; Start and Stop are both idempotent, and runs never overlap.
type Sweeper struct {
	Blacklist TokenBlacklist
	Schedule  string
	Log       *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

func NewSweeper(blacklist TokenBlacklist, schedule string, log *slog.Logger) *Sweeper {
	return &Sweeper{
		Blacklist: blacklist,
		Schedule:  schedule,
		Log:       log,
	}
}

func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	clog := cron.PrintfLogger(printfAdapter{s.Log})
	c := cron.New(cron.WithChain(
		cron.Recover(clog),
		cron.SkipIfStillRunning(clog),
	))
	if _, err := c.AddFunc(s.Schedule, s.tick); err != nil {
		return fmt.Errorf("sweeper: bad schedule %q: %w", s.Schedule, err)
	}
	c.Start()
	s.cron = c

	s.Log.Info("blacklist sweeper started", "schedule", s.Schedule)
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish. No
// tick fires after it returns.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.Log.Info("blacklist sweeper stopped")
}

func (s *Sweeper) tick() {
	removed, err := s.RunSweep(context.Background())
	if err != nil {
		s.Log.Error("blacklist sweep failed", "error", err)
		return
	}
	s.Log.Info("blacklist sweep completed", "removed", removed)
}

func (s *Sweeper) RunSweep(ctx context.Context) (int64, error) {
	return s.Blacklist.SweepExpired(ctx)
}

type printfAdapter struct {
	l *slog.Logger
}

func (a printfAdapter) Printf(format string, args ...interface{}) {
	a.l.Info(fmt.Sprintf(format, args...))
}
