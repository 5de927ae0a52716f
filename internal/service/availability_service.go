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
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AvailabilityService is the company-controlled gate in front of every course mutation.
type AvailabilityService struct {
	Store   repository.Store
	Catalog *catalog.Catalog
	// Bypass opens every course. Config validation refuses it in release mode.
	Bypass bool
	now    func() time.Time
}

func NewAvailabilityService(store repository.Store, cat *catalog.Catalog, bypass bool) *AvailabilityService {
	if bypass {
		logger.Log.Warn("availability bypass is enabled: every course is open to every collaborator")
	}
	return &AvailabilityService{Store: store, Catalog: cat, Bypass: bypass, now: utcNow}
}

type SetAvailabilityInput struct {
	Disponivel        bool
	PeriodicidadeDias *int
	Motivo            string
}

func (s *AvailabilityService) IsAvailable(ctx context.Context, key model.CourseKey) (model.AvailabilityStatus, error) {
	return s.status(ctx, s.Store, key)
}

// status reads through store so it can run inside a caller's transaction.
func (s *AvailabilityService) status(ctx context.Context, store repository.Store, key model.CourseKey) (model.AvailabilityStatus, error) {
	if s.Bypass {
		return model.AvailabilityStatus{Available: true}, nil
	}
	a, err := store.Availability().Find(ctx, key)
	if errors.Is(err, util.ErrNotFound) {
		return model.AvailabilityStatus{Reason: model.ReasonNotReleased}, nil
	}
	if err != nil {
		return model.AvailabilityStatus{}, err
	}
	if !a.Disponivel {
		return model.AvailabilityStatus{Reason: model.ReasonBlockedByCompany}, nil
	}
	return model.AvailabilityStatus{Available: true}, nil
}

// require fails with ErrNotAvailable when the gate is closed.
func (s *AvailabilityService) require(ctx context.Context, store repository.Store, key model.CourseKey) error {
	st, err := s.status(ctx, store, key)
	if err != nil {
		return err
	}
	if !st.Available {
		return fmt.Errorf("%w: %s", util.ErrNotAvailable, st.Reason)
	}
	return nil
}

// SetAvailability releases or blocks a course for one collaborator of the actor's company.
func (s *AvailabilityService) SetAvailability(ctx context.Context, actor model.Actor, colaboradorID, cursoSlug string, in SetAvailabilityInput) (*model.CourseAvailability, error) {
	if _, ok := s.Catalog.Get(cursoSlug); !ok {
		return nil, util.ErrUnknownCourse
	}
	if in.PeriodicidadeDias != nil && *in.PeriodicidadeDias < 0 {
		return nil, util.ErrInvalidPeriodicity
	}
	colab, err := authorizeColaborador(ctx, s.Store, actor, colaboradorID)
	if err != nil {
		return nil, err
	}

	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	now := s.now()
	var result *model.CourseAvailability

	err = s.Store.Atomic(ctx, key, func(tx repository.Store) error {
		a, err := tx.Availability().Find(ctx, key)
		if errors.Is(err, util.ErrNotFound) {
			a = &model.CourseAvailability{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
		} else if err != nil {
			return err
		}
		if colab != nil {
			a.EmpresaID = colab.EmpresaID
		} else if a.EmpresaID == "" {
			a.EmpresaID = actor.EmpresaID
		}
		if in.PeriodicidadeDias != nil {
			if *in.PeriodicidadeDias == 0 {
				a.PeriodicidadeDias = nil
			} else {
				days := *in.PeriodicidadeDias
				a.PeriodicidadeDias = &days
			}
		}

		if in.Disponivel {
			a.Release(actor.ID, now)
		} else {
			a.Block(actor.ID, in.Motivo, now)
		}
		if err := tx.Availability().Upsert(ctx, a); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]interface{}{
		"cursoSlug":  cursoSlug,
		"disponivel": in.Disponivel,
		"motivo":     in.Motivo,
	})
	writeAudit(ctx, s.Store, actor, model.AuditAvailabilityChange, colaboradorID, "succeeded", datatypes.JSON(details))

	return result, nil
}

// Disable closes the gate on behalf of the system. A missing row is created closed.
func (s *AvailabilityService) Disable(ctx context.Context, key model.CourseKey, reason string) error {
	now := s.now()
	return s.Store.Atomic(ctx, key, func(tx repository.Store) error {
		a, err := tx.Availability().Find(ctx, key)
		if errors.Is(err, util.ErrNotFound) {
			a = &model.CourseAvailability{ColaboradorID: key.ColaboradorID, CursoSlug: key.CursoSlug}
			if colab, err := tx.Colaboradores().FindByID(ctx, key.ColaboradorID); err == nil {
				a.EmpresaID = colab.EmpresaID
			}
		} else if err != nil {
			return err
		}
		if !a.Disponivel && a.ID != "" {
			return nil
		}
		a.Block(model.System.ID, reason, now)
		return tx.Availability().Upsert(ctx, a)
	})
}

// ReleaseDue re-opens every blocked course whose scheduled release has passed.
func (s *AvailabilityService) ReleaseDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.Store.Availability().ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range due {
		key := model.CourseKey{ColaboradorID: due[i].ColaboradorID, CursoSlug: due[i].CursoSlug}
		err := s.Store.Atomic(ctx, key, func(tx repository.Store) error {
			a, err := tx.Availability().Find(ctx, key)
			if err != nil {
				return err
			}
			if a.Disponivel || a.ProximaDisponibilidade == nil || a.ProximaDisponibilidade.After(now) {
				return nil
			}
			a.Release(model.System.ID, now)
			if err := tx.Availability().Upsert(ctx, a); err != nil {
				return err
			}
			released++
			return nil
		})
		if err != nil {
			logger.Log.Error("failed to release course",
				zap.String("colaboradorId", key.ColaboradorID),
				zap.String("cursoSlug", key.CursoSlug),
				zap.Error(err))
		}
	}

	if released > 0 {
		monitoring.AvailabilityReleased.Add(float64(released))
		logger.Log.Info("scheduled course releases applied", zap.Int("released", released))
	}
	return released, nil
}
