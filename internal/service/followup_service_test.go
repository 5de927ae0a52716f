package service

import (
	"context"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/repository"
	"humaniq_backend/pkg/database"
	"testing"
	"time"
)

// brokenGate returns a gate whose database has been closed.
func brokenGate(t *testing.T, env *testEnv) *AvailabilityService {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.Close()
	return NewAvailabilityService(repository.NewGormStore(db), env.cat, false)
}

func TestLockCourseQueuesAndRetries(t *testing.T) {
	env := newEnv(t)
	env.release(t, testKey)
	ctx := context.Background()

	queue := NewMemoryFollowUpQueue()
	failing := NewFollowUpService(brokenGate(t, env), queue, 3)
	failing.LockCourse(ctx, testKey, "approved in final evaluation")

	if n, _ := queue.Len(ctx); n != 1 {
		t.Fatalf("failed lock must be queued, queue has %d", n)
	}

	// the store recovers: the retry applies the lock
	working := NewFollowUpService(env.gate, queue, 3)
	done, err := working.ProcessPending(ctx)
	if err != nil || done != 1 {
		t.Fatalf("ProcessPending: done=%d err=%v", done, err)
	}
	st, _ := env.gate.IsAvailable(ctx, testKey)
	if st.Available {
		t.Fatalf("retry did not lock the course")
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Fatalf("queue not drained: %d", n)
	}
}

func TestLockCourseGivesUpAfterMaxRetries(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	queue := NewMemoryFollowUpQueue()
	failing := NewFollowUpService(brokenGate(t, env), queue, 2)
	failing.LockCourse(ctx, testKey, "certificate issued")

	if _, err := failing.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if n, _ := queue.Len(ctx); n != 0 {
		t.Fatalf("task should be dead-lettered after the retry budget, queue has %d", n)
	}
}

func TestDisableSchedulesNextReleaseAndReleaseDue(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	days := 30

	if _, err := env.gate.SetAvailability(ctx, empresaActor, testColab, testSlug, SetAvailabilityInput{Disponivel: true, PeriodicidadeDias: &days}); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := env.gate.Disable(ctx, testKey, "certificate issued"); err != nil {
		t.Fatalf("disable: %v", err)
	}

	a, err := env.store.Availability().Find(ctx, testKey)
	if err != nil || a.Disponivel || a.ProximaDisponibilidade == nil {
		t.Fatalf("expected a scheduled release: %+v, %v", a, err)
	}

	if n, _ := env.gate.ReleaseDue(ctx); n != 0 {
		t.Fatalf("nothing is due yet, released %d", n)
	}

	env.gate.now = func() time.Time { return time.Now().UTC().AddDate(0, 0, days+1) }
	n, err := env.gate.ReleaseDue(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ReleaseDue: n=%d err=%v", n, err)
	}
	st, _ := env.gate.IsAvailable(ctx, testKey)
	if !st.Available {
		t.Fatalf("course should be released again")
	}
}

func TestDisableWithoutRowCreatesClosedGate(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if err := env.gate.Disable(ctx, testKey, "certificate issued"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	a, err := env.store.Availability().Find(ctx, testKey)
	if err != nil || a.Disponivel || a.EmpresaID != testEmpresa || a.AtualizadoPor != model.System.ID {
		t.Fatalf("unexpected gate: %+v, %v", a, err)
	}
}
