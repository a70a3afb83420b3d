package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/models"
)

const keyLayout = "20060102T150405Z"

// Snapshotter returns a consistent copy of the whole document.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*models.Document, error)
}

// Job writes one timestamped snapshot of the record store per run.
type Job struct {
	source Snapshotter
	target Target
	prefix string
	now    func() time.Time
}

// NewJob returns a job copying source into target. Keys are prefixed with prefix.
func NewJob(source Snapshotter, target Target, prefix string) *Job {
	return &Job{source: source, target: target, prefix: prefix, now: time.Now}
}

// Key returns the object key used for a snapshot taken at t.
func (j *Job) Key(t time.Time) string {
	return fmt.Sprintf("%sfleet-%s.json", j.prefix, t.UTC().Format(keyLayout))
}

// Run takes the snapshot and returns the key it was stored under.
func (j *Job) Run(ctx context.Context) (string, error) {
	doc, err := j.source.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := j.Key(j.now())
	if err := j.target.Put(ctx, key, data); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"key":      key,
		"vehicles": len(doc.Vehicles),
		"bytes":    len(data),
	}).Info("Record store snapshot written")
	return key, nil
}
