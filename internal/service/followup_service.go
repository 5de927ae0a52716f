package service

import (
	"context"
	"encoding/json"
	"errors"
	"humaniq_backend/internal/model"
	"humaniq_backend/pkg/logger"
	"humaniq_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	followUpQueueKey  = "humaniq:followup:autolock"
	followUpBatchSize = 100
)

// FollowUpTask is a pending auto-lock of one collaborator and course.
type FollowUpTask struct {
	ColaboradorID string    `json:"colaboradorId"`
	CursoSlug     string    `json:"cursoSlug"`
	Reason        string    `json:"reason"`
	Attempts      int       `json:"attempts"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`
}

func (t FollowUpTask) Key() model.CourseKey {
	return model.CourseKey{ColaboradorID: t.ColaboradorID, CursoSlug: t.CursoSlug}
}

type FollowUpQueue interface {
	Push(ctx context.Context, task FollowUpTask) error
	// Pop removes up to n tasks, oldest first.
	Pop(ctx context.Context, n int) ([]FollowUpTask, error)
	Len(ctx context.Context) (int64, error)
}

// RedisFollowUpQueue shares the retry queue between instances.
type RedisFollowUpQueue struct {
	Redis *redis.Client
	Key   string
}

func NewRedisFollowUpQueue(rdb *redis.Client) *RedisFollowUpQueue {
	return &RedisFollowUpQueue{Redis: rdb, Key: followUpQueueKey}
}

func (q *RedisFollowUpQueue) Push(ctx context.Context, task FollowUpTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.Redis.LPush(ctx, q.Key, data).Err()
}

func (q *RedisFollowUpQueue) Pop(ctx context.Context, n int) ([]FollowUpTask, error) {
	var tasks []FollowUpTask
	for len(tasks) < n {
		raw, err := q.Redis.RPop(ctx, q.Key).Bytes()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return tasks, err
		}
		var t FollowUpTask
		if err := json.Unmarshal(raw, &t); err != nil {
			logger.Log.Error("dropping malformed follow-up task", zap.ByteString("payload", raw), zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (q *RedisFollowUpQueue) Len(ctx context.Context) (int64, error) {
	return q.Redis.LLen(ctx, q.Key).Result()
}

// MemoryFollowUpQueue is used when Redis is disabled. Pending tasks die with the process.
type MemoryFollowUpQueue struct {
	mu    sync.Mutex
	tasks []FollowUpTask
}

func NewMemoryFollowUpQueue() *MemoryFollowUpQueue {
	return &MemoryFollowUpQueue{}
}

func (q *MemoryFollowUpQueue) Push(ctx context.Context, task FollowUpTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *MemoryFollowUpQueue) Pop(ctx context.Context, n int) ([]FollowUpTask, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.tasks) {
		n = len(q.tasks)
	}
	out := make([]FollowUpTask, n)
	copy(out, q.tasks[:n])
	q.tasks = q.tasks[n:]
	return out, nil
}

func (q *MemoryFollowUpQueue) Len(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.tasks)), nil
}

// FollowUpService runs the auto-lock that follows a pass or an issuance. Failures never
// reach the caller: they are queued, retried by the scheduler and alerted once the
// retry budget is spent.
type FollowUpService struct {
	Gate       *AvailabilityService
	Queue      FollowUpQueue
	MaxRetries int
	now        func() time.Time
}

func NewFollowUpService(gate *AvailabilityService, queue FollowUpQueue, maxRetries int) *FollowUpService {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &FollowUpService{Gate: gate, Queue: queue, MaxRetries: maxRetries, now: utcNow}
}

// LockCourse disables availability for key. It never returns an error.
func (s *FollowUpService) LockCourse(ctx context.Context, key model.CourseKey, reason string) {
	ctx = context.WithoutCancel(ctx)
	err := s.Gate.Disable(ctx, key, reason)
	if err == nil {
		return
	}

	monitoring.FollowUpFailures.WithLabelValues("queued").Inc()
	logger.Log.Warn("auto-lock failed, queued for retry",
		zap.String("colaboradorId", key.ColaboradorID),
		zap.String("cursoSlug", key.CursoSlug),
		zap.Error(err))

	task := FollowUpTask{
		ColaboradorID: key.ColaboradorID,
		CursoSlug:     key.CursoSlug,
		Reason:        reason,
		Attempts:      1,
		EnqueuedAt:    s.now(),
	}
	if qerr := s.Queue.Push(ctx, task); qerr != nil {
		s.deadLetter(task, qerr)
	}
}

// ProcessPending retries queued auto-locks once each and reports how many succeeded.
func (s *FollowUpService) ProcessPending(ctx context.Context) (int, error) {
	tasks, err := s.Queue.Pop(ctx, followUpBatchSize)
	if err != nil && len(tasks) == 0 {
		return 0, err
	}

	done := 0
	for _, task := range tasks {
		derr := s.Gate.Disable(ctx, task.Key(), task.Reason)
		if derr == nil {
			done++
			continue
		}
		task.Attempts++
		if task.Attempts >= s.MaxRetries {
			s.deadLetter(task, derr)
			continue
		}
		if qerr := s.Queue.Push(ctx, task); qerr != nil {
			s.deadLetter(task, qerr)
		}
	}
	if done > 0 {
		logger.Log.Info("queued auto-locks applied", zap.Int("count", done))
	}
	return done, err
}

func (s *FollowUpService) deadLetter(task FollowUpTask, err error) {
	monitoring.FollowUpFailures.WithLabelValues("dead_letter").Inc()
	logger.Log.Error("auto-lock abandoned, course remains available",
		zap.String("colaboradorId", task.ColaboradorID),
		zap.String("cursoSlug", task.CursoSlug),
		zap.Int("attempts", task.Attempts),
		zap.Time("enqueuedAt", task.EnqueuedAt),
		zap.Error(err))
}
