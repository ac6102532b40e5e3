package service

import (
	"context"
	"sync"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const sweepTimeout = 30 * time.Second

// ExpirySweeper soft-deletes appointments whose expire_at has passed.
type ExpirySweeper struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	metrics         *metrics.Metrics
	spec            string
	now             func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewExpirySweeper(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository, m *metrics.Metrics, spec string) *ExpirySweeper {
	if spec == "" {
		spec = "@every 1m"
	}
	return &ExpirySweeper{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		metrics:         m,
		spec:            spec,
		now:             time.Now,
	}
}

// SweepOnce runs a single pass and returns the number of appointments removed.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.appointmentRepo.DeleteExpired(s.db.WithContext(ctx), s.now())
	if err != nil {
		s.log.Warnf("Failed to sweep expired appointments: %+v", err)
		return 0, err
	}

	if n > 0 {
		s.log.Infof("Expired %d appointments", n)
	}
	s.metrics.ObserveExpired(n)
	return n, nil
}

// Start schedules the sweep. Calling Start twice is a no-op.
func (s *ExpirySweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		s.SweepOnce(ctx)
	})
	if err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.log.Infof("Expiry sweeper scheduled (%s)", s.spec)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.log.Info("Expiry sweeper stopped")
}
