package repository

import (
	"context"
	"errors"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/util"
	"sync"
	"time"

	"gorm.io/gorm"
)

type ProgressStore interface {
	Find(ctx context.Context, key model.CourseKey) (*model.CourseProgress, error)
	// FindForUpdate locks the row until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, key model.CourseKey) (*model.CourseProgress, error)
	Create(ctx context.Context, p *model.CourseProgress) error
	Save(ctx context.Context, p *model.CourseProgress) error
	ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseProgress, error)
}

type EvaluationStore interface {
	Create(ctx context.Context, e *model.CourseEvaluation) error
	ListByKey(ctx context.Context, key model.CourseKey) ([]model.CourseEvaluation, error)
	HasPassed(ctx context.Context, key model.CourseKey) (bool, error)
}

// CertificateStore has no update method: issued certificates are immutable.
type CertificateStore interface {
	FindByKey(ctx context.Context, key model.CourseKey) (*model.CourseCertificate, error)
	FindByCode(ctx context.Context, code string) (*model.CourseCertificate, error)
	Create(ctx context.Context, c *model.CourseCertificate) error
	ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseCertificate, error)
}

type AvailabilityStore interface {
	Find(ctx context.Context, key model.CourseKey) (*model.CourseAvailability, error)
	Upsert(ctx context.Context, a *model.CourseAvailability) error
	ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseAvailability, error)
	ListDue(ctx context.Context, now time.Time) ([]model.CourseAvailability, error)
}

type ColaboradorStore interface {
	FindByID(ctx context.Context, id string) (*model.Colaborador, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]model.Colaborador, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListByAction(ctx context.Context, action string, limit int) ([]model.AuditLog, error)
}

// Store is the storage port used by the course services.
type Store interface {
	Progress() ProgressStore
	Evaluations() EvaluationStore
	Certificates() CertificateStore
	Availability() AvailabilityStore
	Colaboradores() ColaboradorStore
	Audit() AuditStore

	// Atomic runs fn in one transaction serialized against every other Atomic call for key.
	Atomic(ctx context.Context, key model.CourseKey, fn func(Store) error) error
	// PurgeColaborador deletes every course record of one collaborator in one transaction.
	PurgeColaborador(ctx context.Context, colaboradorID string) (model.PurgeResult, error)
	PurgeAll(ctx context.Context) (model.PurgeResult, error)
}

// atomicRetries bounds the retries after a unique-index conflict created by another instance.
const atomicRetries = 3

type GormStore struct {
	DB       *gorm.DB
	locks    *keyedMutex
	lockRows bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		DB:    db,
		locks: newKeyedMutex(),
		// SQLite has no row locks; it runs with a single connection instead.
		lockRows: db.Dialector.Name() != "sqlite",
	}
}

func (s *GormStore) with(db *gorm.DB) *GormStore {
	return &GormStore{DB: db, locks: s.locks, lockRows: s.lockRows}
}

func (s *GormStore) Progress() ProgressStore {
	return &CourseProgressRepository{DB: s.DB, lockRows: s.lockRows}
}

func (s *GormStore) Evaluations() EvaluationStore {
	return &CourseEvaluationRepository{DB: s.DB}
}

func (s *GormStore) Certificates() CertificateStore {
	return &CourseCertificateRepository{DB: s.DB}
}

func (s *GormStore) Availability() AvailabilityStore {
	return &CourseAvailabilityRepository{DB: s.DB}
}

func (s *GormStore) Colaboradores() ColaboradorStore {
	return &ColaboradorRepository{DB: s.DB}
}

func (s *GormStore) Audit() AuditStore {
	return &AuditRepository{DB: s.DB}
}

func (s *GormStore) Atomic(ctx context.Context, key model.CourseKey, fn func(Store) error) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	var err error
	for i := 0; i < atomicRetries; i++ {
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(s.with(tx))
		})
		if !errors.Is(err, util.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *GormStore) PurgeColaborador(ctx context.Context, colaboradorID string) (model.PurgeResult, error) {
	return s.purge(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("colaborador_id = ?", colaboradorID)
	})
}

func (s *GormStore) PurgeAll(ctx context.Context) (model.PurgeResult, error) {
	return s.purge(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true})
	})
}

func (s *GormStore) purge(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (model.PurgeResult, error) {
	var res model.PurgeResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			count *int64
		}{
			{&model.CourseEvaluation{}, &res.Avaliacoes},
			{&model.CourseCertificate{}, &res.Certificados},
			{&model.CourseProgress{}, &res.Progresso},
			{&model.CourseAvailability{}, &res.Disponibilidade},
		}
		for _, step := range steps {
			result := scope(tx).Delete(step.model)
			if result.Error != nil {
				return result.Error
			}
			*step.count = result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return model.PurgeResult{}, err
	}
	return res, nil
}

// translate maps gorm errors onto the sentinels the services understand.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return util.ErrConflict
	}
	return err
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.CourseKey]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[model.CourseKey]*keyedEntry)}
}

// Lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) Lock(key model.CourseKey) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
