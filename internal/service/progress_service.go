package service

import (
	"context"
	"errors"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/repository"
	"humaniq_backend/internal/util"
	"humaniq_backend/pkg/logger"
	"humaniq_backend/pkg/monitoring"
	"humaniq_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

type ProgressService struct {
	Store   repository.Store
	Catalog *catalog.Catalog
	Gate    *AvailabilityService
	now     func() time.Time
}

func NewProgressService(store repository.Store, cat *catalog.Catalog, gate *AvailabilityService) *ProgressService {
	return &ProgressService{Store: store, Catalog: cat, Gate: gate, now: utcNow}
}

type StartProgressInput struct {
	CursoID      string
	CursoSlug    string
	TotalModulos int
}

// courseTotal prefers the catalog over the caller-supplied total.
func (s *ProgressService) courseTotal(slug string, fallback int) (string, int) {
	if course, ok := s.Catalog.Get(slug); ok && course.TotalModules() > 0 {
		return course.ID, course.TotalModules()
	}
	return "", fallback
}

// StartProgress creates the record once. An existing record is returned unchanged.
func (s *ProgressService) StartProgress(ctx context.Context, colaboradorID string, in StartProgressInput) (*model.CourseProgress, bool, error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: in.CursoSlug}
	ctx, span := tracing.StartSpan(ctx, "ProgressService.StartProgress", key.ColaboradorID, key.CursoSlug)

	var (
		result  *model.CourseProgress
		created bool
	)
	err := s.Store.Atomic(ctx, key, func(tx repository.Store) error {
		created = false
		if err := s.Gate.require(ctx, tx, key); err != nil {
			return err
		}

		existing, err := tx.Progress().FindForUpdate(ctx, key)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, util.ErrNotFound) {
			return err
		}

		cursoID, total := s.courseTotal(key.CursoSlug, in.TotalModulos)
		if cursoID == "" {
			cursoID = in.CursoID
		}
		if total <= 0 {
			return util.ErrMissingTotal
		}

		p := model.NewCourseProgress(key, cursoID, total, s.now())
		if err := tx.Progress().Create(ctx, p); err != nil {
			return err
		}
		result, created = p, true
		return nil
	})
	tracing.End(span, err)
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// CompleteModule marks moduleID as done for the pair. fallbackTotal is only used for
// courses missing from the catalog.
func (s *ProgressService) CompleteModule(ctx context.Context, colaboradorID, cursoSlug string, moduleID, fallbackTotal int) (*model.CourseProgress, error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	ctx, span := tracing.StartSpan(ctx, "ProgressService.CompleteModule", key.ColaboradorID, key.CursoSlug)

	course, known := s.Catalog.Get(cursoSlug)
	cursoID, total := s.courseTotal(cursoSlug, fallbackTotal)

	var (
		result *model.CourseProgress
		added  bool
	)
	err := s.Store.Atomic(ctx, key, func(tx repository.Store) error {
		if err := s.Gate.require(ctx, tx, key); err != nil {
			return err
		}

		now := s.now()
		p, err := tx.Progress().FindForUpdate(ctx, key)
		isNew := false
		if errors.Is(err, util.ErrNotFound) {
			if total <= 0 {
				return util.ErrMissingTotal
			}
			p = model.NewCourseProgress(key, cursoID, total, now)
			isNew = true
		} else if err != nil {
			return err
		}

		if moduleID <= 0 {
			return util.ErrInvalidModule
		}
		if known && course.TotalModules() > 0 && !course.HasModule(moduleID) {
			return util.ErrModuleNotInCourse
		}

		p.ReconcileTotal(total)
		added = p.MarkModule(moduleID)
		p.Recompute(now)

		if isNew {
			err = tx.Progress().Create(ctx, p)
		} else {
			err = tx.Progress().Save(ctx, p)
		}
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}

	if added {
		monitoring.ModulesCompleted.Inc()
	}
	logger.Log.Debug("module completed",
		zap.String("colaboradorId", colaboradorID),
		zap.String("cursoSlug", cursoSlug),
		zap.Int("moduloId", moduleID),
		zap.Int("progresso", result.ProgressoPorcentagem))
	return result, nil
}

// GetProgress reads the record even when the gate is closed. A missing record is created
// lazily for catalog courses the collaborator may access.
func (s *ProgressService) GetProgress(ctx context.Context, colaboradorID, cursoSlug string) (*model.CourseProgress, error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	p, err := s.Store.Progress().Find(ctx, key)
	if err == nil || !errors.Is(err, util.ErrNotFound) {
		return p, err
	}

	course, ok := s.Catalog.Get(cursoSlug)
	if !ok || course.TotalModules() == 0 {
		return nil, util.ErrNotFound
	}
	st, err := s.Gate.IsAvailable(ctx, key)
	if err != nil {
		return nil, err
	}
	if !st.Available {
		return nil, util.ErrNotFound
	}

	p, _, err = s.StartProgress(ctx, colaboradorID, StartProgressInput{
		CursoID:      course.ID,
		CursoSlug:    cursoSlug,
		TotalModulos: course.TotalModules(),
	})
	if errors.Is(err, util.ErrNotAvailable) {
		return nil, util.ErrNotFound
	}
	return p, err
}

func (s *ProgressService) ListProgress(ctx context.Context, colaboradorID string) ([]model.CourseProgress, error) {
	return s.Store.Progress().ListByColaborador(ctx, colaboradorID)
}
