package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ukydev/fleet-records/internal/config"
	"github.com/ukydev/fleet-records/internal/db"
)

// Target stores snapshot blobs under a key.
type Target interface {
	Put(ctx context.Context, key string, data []byte) error
}

// DirTarget writes snapshots into a local directory.
type DirTarget struct {
	dir string
}

// NewDirTarget creates dir if needed.
func NewDirTarget(dir string) (*DirTarget, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &DirTarget{dir: dir}, nil
}

func (t *DirTarget) Put(_ context.Context, key string, data []byte) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid backup key %q", key)
	}
	path := filepath.Join(t.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename backup: %w", err)
	}
	return nil
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target uploads snapshots to an S3 bucket.
type S3Target struct {
	client objectPutter
	bucket string
}

// NewS3Target returns a target writing to bucket through client.
func NewS3Target(client objectPutter, bucket string) *S3Target {
	return &S3Target{client: client, bucket: bucket}
}

func (t *S3Target) Put(ctx context.Context, key string, data []byte) error {
	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", t.bucket, key, err)
	}
	return nil
}

// OpenTarget builds the target selected by cfg.Target.
func OpenTarget(ctx context.Context, cfg config.BackupConfig) (Target, error) {
	switch cfg.Target {
	case config.BackupDir:
		return NewDirTarget(cfg.Dir)
	case config.BackupS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("backup s3 bucket required")
		}
		client, err := db.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Target(client, cfg.S3.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown backup target %q", cfg.Target)
	}
}
