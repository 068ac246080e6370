package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	jobKeyPrefix      = "ai-assessment:job:"
	criteriaKeyPrefix = "ai-assessment:criteria:"
)

// JobCache holds job and criteria snapshots in redis.
type JobCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewJobCache(rdb *redis.Client, ttl time.Duration) *JobCache {
	return &JobCache{rdb: rdb, ttl: ttl}
}

func jobKey(jobID uint) string      { return fmt.Sprintf("%s%d", jobKeyPrefix, jobID) }
func criteriaKey(jobID uint) string { return fmt.Sprintf("%s%d", criteriaKeyPrefix, jobID) }

// Invalidate drops the cached job and criteria. Called after any write to them.
func (c *JobCache) Invalidate(ctx context.Context, jobID uint) error {
	return c.rdb.Del(ctx, jobKey(jobID), criteriaKey(jobID)).Err()
}

func (c *JobCache) load(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *JobCache) store(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// CachedJobStore serves reads from redis and falls back to next on a miss.
// Redis failures degrade to uncached reads.
type CachedJobStore struct {
	next  JobStore
	cache *JobCache
	log   *zap.Logger
}

func NewCachedJobStore(next JobStore, cache *JobCache, log *zap.Logger) *CachedJobStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedJobStore{next: next, cache: cache, log: log}
}

func (s *CachedJobStore) GetJob(ctx context.Context, jobID uint) (*model.Job, error) {
	var job model.Job
	hit, err := s.cache.load(ctx, jobKey(jobID), &job)
	if err != nil {
		s.log.Warn("job cache read failed", zap.Uint("job_id", jobID), zap.Error(err))
	}
	if hit {
		return &job, nil
	}

	fresh, err := s.next.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.store(ctx, jobKey(jobID), fresh); err != nil {
		s.log.Warn("job cache write failed", zap.Uint("job_id", jobID), zap.Error(err))
	}
	return fresh, nil
}

func (s *CachedJobStore) GetJobCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error) {
	var criteria model.JobCriteria
	hit, err := s.cache.load(ctx, criteriaKey(jobID), &criteria)
	if err != nil {
		s.log.Warn("criteria cache read failed", zap.Uint("job_id", jobID), zap.Error(err))
	}
	if hit {
		return &criteria, nil
	}

	fresh, err := s.next.GetJobCriteria(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.store(ctx, criteriaKey(jobID), fresh); err != nil {
		s.log.Warn("criteria cache write failed", zap.Uint("job_id", jobID), zap.Error(err))
	}
	return fresh, nil
}
