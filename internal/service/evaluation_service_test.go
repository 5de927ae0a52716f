package service

import (
	"context"
	"encoding/json"
	"errors"
	"humaniq_backend/internal/util"
	"testing"
)

func readyForEvaluation(t *testing.T) *testEnv {
	t.Helper()
	env := newEnv(t)
	env.release(t, testKey)
	env.completeAll(t, testKey, 3)
	return env
}

func TestPassThresholdBoundary(t *testing.T) {
	env := readyForEvaluation(t)
	ctx := context.Background()

	res, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 6, 10))
	if err != nil {
		t.Fatalf("score 6: %v", err)
	}
	if res.Aprovado || res.NotaMinima != 7 {
		t.Fatalf("6/10 must fail with minimum 7: %+v", res)
	}

	res, err = env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 7, 10))
	if err != nil {
		t.Fatalf("score 7: %v", err)
	}
	if !res.Aprovado || res.Tentativa != 2 || res.TentativasRestantes != 1 {
		t.Fatalf("7/10 must pass on attempt 2: %+v", res)
	}
}

func TestEvaluationRequiresCompletedModules(t *testing.T) {
	env := newEnv(t)
	env.release(t, testKey)
	ctx := context.Background()

	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 8, 10)); !errors.Is(err, util.ErrModulesIncomplete) {
		t.Fatalf("no progress: expected ErrModulesIncomplete, got %v", err)
	}
	env.completeAll(t, testKey, 2)
	// modules are checked before the malformed total
	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(0, 0, 0)); !errors.Is(err, util.ErrModulesIncomplete) {
		t.Fatalf("partial progress: expected ErrModulesIncomplete, got %v", err)
	}
}

func TestEvaluationInputValidation(t *testing.T) {
	env := readyForEvaluation(t)
	ctx := context.Background()

	half := 7.5
	cases := []struct {
		name string
		in   EvaluationSubmission
		want error
	}{
		{"zero total", submission(0, 0, 0), util.ErrInvalidTotalQuestions},
		{"fractional total", submission(10, 5, 9.5), util.ErrInvalidTotalQuestions},
		{"missing answers", submission(9, 8, 10), util.ErrIncompleteAnswers},
		{"score above total", submission(10, 11, 10), util.ErrInvalidScore},
		{"negative score", submission(10, -1, 10), util.ErrInvalidScore},
		{"fractional score", func() EvaluationSubmission { s := submission(10, 0, 10); s.Pontuacao = &half; return s }(), util.ErrInvalidScore},
		{"missing score", func() EvaluationSubmission { s := submission(10, 0, 10); s.Pontuacao = nil; return s }(), util.ErrInvalidScore},
	}
	for _, tc := range cases {
		if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	p, _ := env.store.Progress().Find(ctx, testKey)
	if p.TentativasAvaliacao != 0 {
		t.Fatalf("rejected submissions consumed attempts: %d", p.TentativasAvaliacao)
	}
}

func TestAnswersKeyedByQuestionAreCounted(t *testing.T) {
	env := readyForEvaluation(t)
	in := submission(0, 3, 3)
	in.Respostas, _ = json.Marshal(map[string]string{"q1": "a", "q2": "b", "q3": "c"})

	res, err := env.evals.SubmitEvaluation(context.Background(), testColab, testSlug, in)
	if err != nil {
		t.Fatalf("object answers: %v", err)
	}
	if !res.Aprovado {
		t.Fatalf("3 of 3 must pass: %+v", res)
	}
}

func TestAttemptCap(t *testing.T) {
	env := readyForEvaluation(t)
	ctx := context.Background()

	for i, score := range []float64{3, 4, 5} {
		res, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, score, 10))
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if res.Aprovado || res.Tentativa != i+1 {
			t.Fatalf("attempt %d: unexpected result %+v", i+1, res)
		}
	}

	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 10, 10)); !errors.Is(err, util.ErrAttemptsExhausted) {
		t.Fatalf("4th attempt: expected ErrAttemptsExhausted, got %v", err)
	}

	evals, err := env.store.Evaluations().ListByKey(ctx, testKey)
	if err != nil || len(evals) != 3 {
		t.Fatalf("expected 3 evaluation rows, got %d (%v)", len(evals), err)
	}
	p, _ := env.store.Progress().Find(ctx, testKey)
	if p.TentativasAvaliacao != 3 || p.AvaliacaoFinalPontuacao != 5 {
		t.Fatalf("summary must hold the latest attempt: %+v", p)
	}
}

func TestAlreadyApproved(t *testing.T) {
	env := readyForEvaluation(t)
	ctx := context.Background()

	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 9, 10)); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 10, 10)); !errors.Is(err, util.ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved, got %v", err)
	}
}

func TestPassLocksAvailability(t *testing.T) {
	env := readyForEvaluation(t)
	ctx := context.Background()

	if _, err := env.evals.SubmitEvaluation(ctx, testColab, testSlug, submission(10, 8, 10)); err != nil {
		t.Fatalf("pass: %v", err)
	}
	st, err := env.gate.IsAvailable(ctx, testKey)
	if err != nil || st.Available {
		t.Fatalf("course should be locked after a pass: %+v, %v", st, err)
	}
}
