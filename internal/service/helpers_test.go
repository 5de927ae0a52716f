package service

import (
	"context"
	"encoding/json"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/repository"
	"humaniq_backend/pkg/database"
	"testing"
	"time"
)

const (
	testSlug    = "curso-teste"
	testColab   = "colab-1"
	testEmpresa = "empresa-1"
)

var testKey = model.CourseKey{ColaboradorID: testColab, CursoSlug: testSlug}

type testEnv struct {
	store     *repository.GormStore
	cat       *catalog.Catalog
	storage   *StorageService
	queue     *MemoryFollowUpQueue
	gate      *AvailabilityService
	followUps *FollowUpService
	progress  *ProgressService
	evals     *EvaluationService
	certs     *CertificateService
	colabs    *ColaboradorService
	archive   string
}

func testCatalog(t *testing.T, modules int) *catalog.Catalog {
	t.Helper()
	mods := make([]catalog.Module, modules)
	for i := range mods {
		mods[i] = catalog.Module{ID: i + 1, Titulo: "Módulo"}
	}
	cat, err := catalog.New([]catalog.Course{{
		ID:           "100",
		Slug:         testSlug,
		Titulo:       "Curso Teste",
		CargaHoraria: 4,
		Modulos:      mods,
	}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store := repository.NewGormStore(db)
	cat := testCatalog(t, 3)
	archive := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: archive}}}
	queue := NewMemoryFollowUpQueue()

	gate := NewAvailabilityService(store, cat, false)
	followUps := NewFollowUpService(gate, queue, 3)
	certs := NewCertificateService(store, cat, storage, followUps)

	env := &testEnv{
		store:     store,
		cat:       cat,
		storage:   storage,
		queue:     queue,
		gate:      gate,
		followUps: followUps,
		progress:  NewProgressService(store, cat, gate),
		evals:     NewEvaluationService(store, cat, followUps),
		certs:     certs,
		colabs:    NewColaboradorService(store, cat, certs, storage),
		archive:   archive,
	}

	colab := &model.Colaborador{ID: testColab, Nome: "Ana Souza", Email: "ana@empresa.com", EmpresaID: testEmpresa, Ativo: true}
	if err := db.Create(colab).Error; err != nil {
		t.Fatalf("seed colaborador: %v", err)
	}
	return env
}

// setCatalog swaps the catalog in every service, as a restart with a new catalog file would.
func (e *testEnv) setCatalog(cat *catalog.Catalog) {
	e.cat = cat
	e.gate.Catalog = cat
	e.progress.Catalog = cat
	e.evals.Catalog = cat
	e.certs.Catalog = cat
	e.colabs.Catalog = cat
}

func (e *testEnv) release(t *testing.T, key model.CourseKey) {
	t.Helper()
	a := &model.CourseAvailability{ColaboradorID: key.ColaboradorID, EmpresaID: testEmpresa, CursoSlug: key.CursoSlug}
	a.Release("empresa-admin", time.Now().UTC())
	if err := e.store.Availability().Upsert(context.Background(), a); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func (e *testEnv) completeAll(t *testing.T, key model.CourseKey, modules int) *model.CourseProgress {
	t.Helper()
	var p *model.CourseProgress
	for m := 1; m <= modules; m++ {
		var err error
		p, err = e.progress.CompleteModule(context.Background(), key.ColaboradorID, key.CursoSlug, m, 0)
		if err != nil {
			t.Fatalf("complete module %d: %v", m, err)
		}
	}
	return p
}

func submission(answers int, score, total float64) EvaluationSubmission {
	list := make([]string, answers)
	for i := range list {
		list[i] = "a"
	}
	raw, _ := json.Marshal(list)
	return EvaluationSubmission{
		CursoID:       "100",
		Respostas:     raw,
		Pontuacao:     &score,
		TotalQuestoes: &total,
		TempoGasto:    300,
	}
}

var (
	colaboradorActor = model.Actor{ID: testColab, Role: model.RoleColaborador, EmpresaID: testEmpresa}
	empresaActor     = model.Actor{ID: "gestor-1", Role: model.RoleEmpresa, EmpresaID: testEmpresa}
	adminActor       = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
)
