package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const runTimeout = 2 * time.Minute

// Scheduler runs the snapshot job on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	job  *Job
}

// NewScheduler registers job under spec, a cron expression with seconds.
func NewScheduler(job *Job, spec string) (*Scheduler, error) {
	// UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	s := &Scheduler{cron: c, job: job}

	if _, err := c.AddFunc(spec, s.runBackup); err != nil {
		return nil, fmt.Errorf("register backup job %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runBackup() {
	s.runWithRecovery("Backup", func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := s.job.Run(ctx); err != nil {
			log.WithError(err).Error("Failed to back up record store")
		}
	})
}

func (s *Scheduler) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"job": jobName, "panic": r}).Error("Job panicked")
		}
	}()

	log.WithField("job", jobName).Debug("Starting job")
	jobFunc()
	log.WithField("job", jobName).Debug("Job completed")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Backup scheduler started")
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Backup scheduler stopped")
}
