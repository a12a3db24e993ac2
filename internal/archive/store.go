// Package archive stores exported simulation results in S3-compatible object
// storage, with an in-memory fallback when no endpoint is configured.
package archive

import (
	"context"
	"log"

	"qsim/internal/config"
)

type Store interface {
	Put(ctx context.Context, key string, content []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// FromConfig picks the backing store. A disabled archive yields nil; callers
// treat nil as "archiving off". Incomplete S3 settings fall back to memory so
// local runs still exercise the export path.
func FromConfig(cfg config.ArchiveConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.CanUseS3() {
		s3, err := NewS3Store(cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("result archive: s3 bucket=%s endpoint=%s", cfg.Bucket, cfg.Endpoint)
		return s3, nil
	}
	log.Printf("result archive: using in-memory fallback (s3 config incomplete)")
	return NewMemoryStore(), nil
}
