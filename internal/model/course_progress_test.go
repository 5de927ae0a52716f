package model

import (
	"testing"
	"time"
)

func TestPassingScoreBoundary(t *testing.T) {
	cases := map[int]int{10: 7, 1: 1, 3: 3, 7: 5, 20: 14}
	for total, want := range cases {
		if got := PassingScore(total); got != want {
			t.Fatalf("PassingScore(%d): got=%d want=%d", total, got, want)
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct{ completed, total, want int }{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{3, 4, 75},
		{5, 4, 100},
		{1, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.completed, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d,%d): got=%d want=%d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestMarkModuleIsIdempotent(t *testing.T) {
	now := time.Now().UTC()
	p := NewCourseProgress(CourseKey{"c1", "curso"}, "1", 3, now)

	if !p.MarkModule(2) {
		t.Fatalf("first mark should change the set")
	}
	if p.MarkModule(2) {
		t.Fatalf("second mark should be a no-op")
	}
	p.Recompute(now)
	if p.CompletedCount() != 1 || p.ProgressoPorcentagem != 33 {
		t.Fatalf("unexpected state: count=%d pct=%d", p.CompletedCount(), p.ProgressoPorcentagem)
	}
}

func TestReconcileTotalIsMonotonic(t *testing.T) {
	p := &CourseProgress{TotalModulos: 0}
	if !p.ReconcileTotal(3) || p.TotalModulos != 3 {
		t.Fatalf("unset total should be raised: %d", p.TotalModulos)
	}
	if p.ReconcileTotal(2) || p.TotalModulos != 3 {
		t.Fatalf("total must never decrease: %d", p.TotalModulos)
	}
	if !p.ReconcileTotal(5) || p.TotalModulos != 5 {
		t.Fatalf("larger total should be adopted: %d", p.TotalModulos)
	}
	if p.ReconcileTotal(0) || p.TotalModulos != 5 {
		t.Fatalf("non-positive totals are ignored: %d", p.TotalModulos)
	}
}

func TestCompletionTimestampInvariant(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewCourseProgress(CourseKey{"c1", "curso"}, "1", 3, start)

	for i, id := range []int{1, 2, 3} {
		p.MarkModule(id)
		p.Recompute(start.Add(time.Duration(i) * time.Hour))
		complete := p.CompletedCount() >= p.TotalModulos
		if (p.DataConclusao != nil) != complete {
			t.Fatalf("after module %d: conclusion=%v complete=%v", id, p.DataConclusao, complete)
		}
	}
	first := *p.DataConclusao

	// recomputing a complete course keeps the original timestamp
	p.Recompute(start.Add(10 * time.Hour))
	if !p.DataConclusao.Equal(first) {
		t.Fatalf("completion timestamp must be set once: got=%v want=%v", p.DataConclusao, first)
	}

	// catalog growth un-completes the course
	p.ReconcileTotal(4)
	p.Recompute(start.Add(11 * time.Hour))
	if p.DataConclusao != nil || p.ProgressoPorcentagem != 75 {
		t.Fatalf("growth should clear completion: conclusion=%v pct=%d", p.DataConclusao, p.ProgressoPorcentagem)
	}
}

func TestDeriveCourseState(t *testing.T) {
	now := time.Now().UTC()
	inProgress := NewCourseProgress(CourseKey{"c", "s"}, "1", 2, now)
	inProgress.MarkModule(1)
	inProgress.Recompute(now)

	complete := NewCourseProgress(CourseKey{"c", "s"}, "1", 1, now)
	complete.MarkModule(1)
	complete.Recompute(now)

	failed := *complete
	failed.RecordAttempt(3, false, now)

	exhausted := failed
	exhausted.TentativasAvaliacao = MaxEvaluationAttempts

	passed := *complete
	passed.RecordAttempt(9, true, now)

	locked := &CourseAvailability{Disponivel: false}
	cert := &CourseCertificate{}

	cases := []struct {
		name string
		p    *CourseProgress
		a    *CourseAvailability
		c    *CourseCertificate
		want CourseState
	}{
		{"none", nil, nil, nil, StateNotStarted},
		{"in progress", inProgress, nil, nil, StateInProgress},
		{"modules complete", complete, nil, nil, StateModulesComplete},
		{"failed", &failed, nil, nil, StateEvaluatedFailed},
		{"exhausted", &exhausted, nil, nil, StateAttemptsExhausted},
		{"passed", &passed, nil, nil, StateEvaluatedPassed},
		{"certified", &passed, &CourseAvailability{Disponivel: true}, cert, StateCertified},
		{"locked", &passed, locked, cert, StateAvailabilityLocked},
	}
	for _, tc := range cases {
		if got := DeriveCourseState(tc.p, tc.a, tc.c); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}
