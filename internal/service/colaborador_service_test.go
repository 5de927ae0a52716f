package service

import (
	"context"
	"errors"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/util"
	"testing"
)

func TestCompanyScoping(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	outsider := model.Actor{ID: "gestor-x", Role: model.RoleEmpresa, EmpresaID: "empresa-2"}

	if _, err := env.gate.SetAvailability(ctx, outsider, testColab, testSlug, SetAvailabilityInput{Disponivel: true}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("other company: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := env.colabs.CourseDetails(ctx, outsider, testColab); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("other company details: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := env.colabs.PurgeCollaborator(ctx, outsider, testColab); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("other company purge: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := env.gate.SetAvailability(ctx, empresaActor, testColab, "nao-existe", SetAvailabilityInput{Disponivel: true}); !errors.Is(err, util.ErrUnknownCourse) {
		t.Fatalf("unknown course: expected ErrUnknownCourse, got %v", err)
	}
	if _, err := env.gate.SetAvailability(ctx, empresaActor, testColab, testSlug, SetAvailabilityInput{Disponivel: true}); err != nil {
		t.Fatalf("own company: %v", err)
	}

	audits, _ := env.store.Audit().ListByAction(ctx, model.AuditAvailabilityChange, 10)
	if len(audits) != 1 || audits[0].ActorID != empresaActor.ID {
		t.Fatalf("expected an availability audit entry, got %+v", audits)
	}
}

func TestCourseDetails(t *testing.T) {
	env := passed(t)
	ctx := context.Background()

	details, err := env.colabs.CourseDetails(ctx, empresaActor, testColab)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Cursos) != 1 || details.Colaborador.Nome != "Ana Souza" {
		t.Fatalf("unexpected details: %+v", details)
	}
	d := details.Cursos[0]
	if d.Estado != model.StateEvaluatedPassed || d.Progresso == nil || d.Certificado != nil || d.TentativasRestantes != 2 {
		t.Fatalf("unexpected course detail: %+v", d)
	}

	if _, _, err := env.certs.Issue(ctx, colaboradorActor, testColab, testSlug); err != nil {
		t.Fatalf("issue: %v", err)
	}
	details, _ = env.colabs.CourseDetails(ctx, adminActor, testColab)
	if d := details.Cursos[0]; d.Estado != model.StateAvailabilityLocked || d.Certificado == nil || d.Disponivel {
		t.Fatalf("expected locked certified course: %+v", d)
	}
}

func TestPurgeCollaborator(t *testing.T) {
	env := passed(t)
	ctx := context.Background()

	if _, _, err := env.certs.Issue(ctx, colaboradorActor, testColab, testSlug); err != nil {
		t.Fatalf("issue: %v", err)
	}

	res, err := env.colabs.PurgeCollaborator(ctx, empresaActor, testColab)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if res.Progresso != 1 || res.Avaliacoes != 1 || res.Certificados != 1 || res.Disponibilidade != 1 {
		t.Fatalf("unexpected purge result: %+v", res)
	}
	if _, err := env.store.Progress().Find(ctx, testKey); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("progress survived purge: %v", err)
	}

	audits, _ := env.store.Audit().ListByAction(ctx, model.AuditPurgeCollaborator, 10)
	if len(audits) != 2 {
		t.Fatalf("expected start and finish audit entries, got %d", len(audits))
	}
}

func TestPurgeAll(t *testing.T) {
	env := passed(t)
	ctx := context.Background()

	if _, err := env.colabs.PurgeAll(ctx, empresaActor, true); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("empresa: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := env.colabs.PurgeAll(ctx, adminActor, false); !errors.Is(err, util.ErrPurgeNotConfirmed) {
		t.Fatalf("unconfirmed: expected ErrPurgeNotConfirmed, got %v", err)
	}
	res, err := env.colabs.PurgeAll(ctx, adminActor, true)
	if err != nil {
		t.Fatalf("purge all: %v", err)
	}
	if res.Total() == 0 {
		t.Fatalf("nothing purged")
	}
	if list, _ := env.store.Progress().ListByColaborador(ctx, testColab); len(list) != 0 {
		t.Fatalf("progress survived purge")
	}
}
