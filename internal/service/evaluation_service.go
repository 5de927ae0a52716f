package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/repository"
	"humaniq_backend/internal/util"
	"humaniq_backend/pkg/logger"
	"humaniq_backend/pkg/monitoring"
	"humaniq_backend/pkg/tracing"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type EvaluationService struct {
	Store     repository.Store
	Catalog   *catalog.Catalog
	FollowUps *FollowUpService
	now       func() time.Time
}

func NewEvaluationService(store repository.Store, cat *catalog.Catalog, followUps *FollowUpService) *EvaluationService {
	return &EvaluationService{Store: store, Catalog: cat, FollowUps: followUps, now: utcNow}
}

// EvaluationSubmission carries the raw request values; numbers stay float so that
// non-integers are rejected with the specific error instead of a binding failure.
type EvaluationSubmission struct {
	CursoID       string
	Respostas     json.RawMessage
	Pontuacao     *float64
	TotalQuestoes *float64
	TempoGasto    int
}

type EvaluationResult struct {
	Avaliacao           *model.CourseEvaluation `json:"avaliacao"`
	Aprovado            bool                    `json:"aprovado"`
	Tentativa           int                     `json:"tentativa"`
	TentativasRestantes int                     `json:"tentativasRestantes"`
	NotaMinima          int                     `json:"notaMinima"`
}

// SubmitEvaluation grades one final-evaluation attempt. Preconditions are checked in a
// fixed order and the first failure wins.
func (s *EvaluationService) SubmitEvaluation(ctx context.Context, colaboradorID, cursoSlug string, in EvaluationSubmission) (*EvaluationResult, error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	ctx, span := tracing.StartSpan(ctx, "EvaluationService.SubmitEvaluation", key.ColaboradorID, key.CursoSlug)

	catalogTotal := 0
	if course, ok := s.Catalog.Get(cursoSlug); ok {
		catalogTotal = course.TotalModules()
	}

	var result *EvaluationResult
	err := s.Store.Atomic(ctx, key, func(tx repository.Store) error {
		p, err := tx.Progress().FindForUpdate(ctx, key)
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrModulesIncomplete
		}
		if err != nil {
			return err
		}
		if !modulesDone(p, catalogTotal) {
			return util.ErrModulesIncomplete
		}

		total, err := questionCount(in.TotalQuestoes)
		if err != nil {
			return err
		}
		if err := checkAnswers(in.Respostas, total); err != nil {
			return err
		}
		score, err := scoreValue(in.Pontuacao, total)
		if err != nil {
			return err
		}
		if p.TentativasAvaliacao >= model.MaxEvaluationAttempts {
			return util.ErrAttemptsExhausted
		}
		if p.AvaliacaoFinalAprovada {
			return util.ErrAlreadyApproved
		}

		now := s.now()
		passed := score >= model.PassingScore(total)
		attempt := p.TentativasAvaliacao + 1

		cursoID := in.CursoID
		if p.CursoID != "" {
			cursoID = p.CursoID
		}
		ev := &model.CourseEvaluation{
			ColaboradorID:  colaboradorID,
			CursoID:        cursoID,
			CursoSlug:      cursoSlug,
			Respostas:      datatypes.JSON(in.Respostas),
			Pontuacao:      score,
			TotalQuestoes:  total,
			Aprovado:       passed,
			TempoGasto:     in.TempoGasto,
			Tentativa:      attempt,
			DataRealizacao: now,
		}
		if err := tx.Evaluations().Create(ctx, ev); err != nil {
			return err
		}

		p.RecordAttempt(score, passed, now)
		if err := tx.Progress().Save(ctx, p); err != nil {
			return err
		}

		result = &EvaluationResult{
			Avaliacao:           ev,
			Aprovado:            passed,
			Tentativa:           attempt,
			TentativasRestantes: p.AttemptsRemaining(),
			NotaMinima:          model.PassingScore(total),
		}
		return nil
	})
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}

	outcome := "failed"
	if result.Aprovado {
		outcome = "passed"
	}
	monitoring.EvaluationsSubmitted.WithLabelValues(outcome).Inc()
	logger.Log.Info("final evaluation submitted",
		zap.String("colaboradorId", colaboradorID),
		zap.String("cursoSlug", cursoSlug),
		zap.Int("tentativa", result.Tentativa),
		zap.Bool("aprovado", result.Aprovado))

	if result.Aprovado && s.FollowUps != nil {
		s.FollowUps.LockCourse(ctx, key, "approved in final evaluation")
	}
	return result, nil
}

// modulesDone also honours a catalog that grew after the record was written.
func modulesDone(p *model.CourseProgress, catalogTotal int) bool {
	total := p.TotalModulos
	if catalogTotal > total {
		total = catalogTotal
	}
	return total > 0 && p.CompletedCount() >= total
}

func questionCount(v *float64) (int, error) {
	if v == nil || *v <= 0 || *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return 0, util.ErrInvalidTotalQuestions
	}
	return int(*v), nil
}

func scoreValue(v *float64, total int) (int, error) {
	if v == nil || *v < 0 || *v != math.Trunc(*v) || *v > float64(total) {
		return 0, fmt.Errorf("%w: expected 0..%d", util.ErrInvalidScore, total)
	}
	return int(*v), nil
}

// checkAnswers accepts a JSON array or an object keyed by question; either must hold
// exactly total entries.
func checkAnswers(raw json.RawMessage, total int) error {
	var n int
	var list []json.RawMessage
	var byQuestion map[string]json.RawMessage
	switch {
	case len(raw) == 0:
		n = 0
	case json.Unmarshal(raw, &list) == nil:
		n = len(list)
	case json.Unmarshal(raw, &byQuestion) == nil:
		n = len(byQuestion)
	default:
		return fmt.Errorf("%w: respostas must be a list or an object", util.ErrIncompleteAnswers)
	}
	if n != total {
		return fmt.Errorf("%w: got %d of %d", util.ErrIncompleteAnswers, n, total)
	}
	return nil
}
