package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
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
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	issueAttempts = 3
	issueReason   = "aprovação na avaliação final"
)

type CertificateService struct {
	Store     repository.Store
	Catalog   *catalog.Catalog
	Storage   *StorageService
	FollowUps *FollowUpService
	now       func() time.Time
	newCode   func(time.Time) (string, error)
}

func NewCertificateService(store repository.Store, cat *catalog.Catalog, storage *StorageService, followUps *FollowUpService) *CertificateService {
	return &CertificateService{
		Store:     store,
		Catalog:   cat,
		Storage:   storage,
		FollowUps: followUps,
		now:       utcNow,
		newCode:   GenerateCertificateCode,
	}
}

// CertificateView is a certificate plus its archived document link.
type CertificateView struct {
	*model.CourseCertificate
	ArquivoURL string `json:"arquivoUrl,omitempty"`
}

type ValidationResult struct {
	Valido      bool                     `json:"valido"`
	Certificado *model.PublicCertificate `json:"certificado,omitempty"`
}

// GenerateCertificateCode returns HQ-<base36 unix millis>-<8 random hex>.
func GenerateCertificateCode(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s",
		util.CertificateCodePrefix,
		strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)),
		strings.ToUpper(hex.EncodeToString(buf)),
	), nil
}

func (s *CertificateService) view(c *model.CourseCertificate) *CertificateView {
	v := &CertificateView{CourseCertificate: c}
	if s.Storage != nil {
		v.ArquivoURL = s.Storage.CertificateURL(c.CodigoValidacao)
	}
	return v
}

// Issue mints the certificate for the pair or returns the one already issued.
// created reports whether this call inserted it.
func (s *CertificateService) Issue(ctx context.Context, actor model.Actor, colaboradorID, cursoSlug string) (view *CertificateView, created bool, err error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	ctx, span := tracing.StartSpan(ctx, "CertificateService.Issue", key.ColaboradorID, key.CursoSlug)
	defer func() { tracing.End(span, err) }()

	existing, err := s.Store.Certificates().FindByKey(ctx, key)
	if err == nil {
		return s.view(existing), false, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, false, err
	}

	course, err := s.checkEligibility(ctx, key)
	if err != nil {
		logger.Log.Info("certificate refused",
			zap.String("colaboradorId", colaboradorID),
			zap.String("cursoSlug", cursoSlug),
			zap.Error(err))
		return nil, false, err
	}

	cert := &model.CourseCertificate{
		ColaboradorID: colaboradorID,
		EmpresaID:     actor.EmpresaID,
		CursoID:       course.ID,
		CursoSlug:     cursoSlug,
		CursoTitulo:   course.Titulo,
		CargaHoraria:  course.CargaHoraria,
		Valido:        true,
		EmitidoPor:    actor.ID,
		MotivoEmissao: issueReason,
	}
	colab, err := s.Store.Colaboradores().FindByID(ctx, colaboradorID)
	switch {
	case err == nil:
		cert.ColaboradorNome = colab.Nome
		cert.EmpresaID = colab.EmpresaID
	case errors.Is(err, util.ErrNotFound):
		logger.Log.Warn("collaborator not found, certificate issued without name", zap.String("colaboradorId", colaboradorID))
	default:
		return nil, false, err
	}

	for i := 0; i < issueAttempts; i++ {
		now := s.now()
		code, err := s.newCode(now)
		if err != nil {
			return nil, false, err
		}
		cert.ID = ""
		cert.CodigoValidacao = code
		cert.DataEmissao = now

		err = s.Store.Certificates().Create(ctx, cert)
		if err == nil {
			s.afterIssue(ctx, actor, cert)
			return s.view(cert), true, nil
		}
		if !errors.Is(err, util.ErrConflict) {
			return nil, false, err
		}

		// a concurrent request won the race for this pair; otherwise the code collided
		if winner, ferr := s.Store.Certificates().FindByKey(ctx, key); ferr == nil {
			return s.view(winner), false, nil
		} else if !errors.Is(ferr, util.ErrNotFound) {
			return nil, false, ferr
		}
	}
	return nil, false, fmt.Errorf("could not allocate a unique certificate code after %d attempts", issueAttempts)
}

// checkEligibility runs the issuance preconditions in order.
func (s *CertificateService) checkEligibility(ctx context.Context, key model.CourseKey) (catalog.Course, error) {
	passed, err := s.Store.Evaluations().HasPassed(ctx, key)
	if err != nil {
		return catalog.Course{}, err
	}
	if !passed {
		return catalog.Course{}, util.ErrNotApproved
	}

	course, known := s.Catalog.Get(key.CursoSlug)
	p, err := s.Store.Progress().Find(ctx, key)
	if errors.Is(err, util.ErrNotFound) {
		return catalog.Course{}, util.ErrCourseIncomplete
	}
	if err != nil {
		return catalog.Course{}, err
	}
	if !p.IsCertifiable() || (known && course.TotalModules() > p.TotalModulos) {
		return catalog.Course{}, util.ErrCourseIncomplete
	}

	if !known {
		return catalog.Course{}, util.ErrUnknownCourse
	}
	return course, nil
}

func (s *CertificateService) afterIssue(ctx context.Context, actor model.Actor, cert *model.CourseCertificate) {
	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.String("colaboradorId", cert.ColaboradorID),
		zap.String("cursoSlug", cert.CursoSlug),
		zap.String("codigo", cert.CodigoValidacao))

	details, _ := json.Marshal(map[string]interface{}{
		"cursoSlug":       cert.CursoSlug,
		"codigoValidacao": cert.CodigoValidacao,
		"motivo":          cert.MotivoEmissao,
	})
	writeAudit(ctx, s.Store, actor, model.AuditCertificateIssued, cert.ColaboradorID, "succeeded", datatypes.JSON(details))

	if s.Storage != nil {
		if _, err := s.Storage.ArchiveCertificate(ctx, cert); err != nil {
			logger.Log.Warn("certificate archive failed", zap.String("codigo", cert.CodigoValidacao), zap.Error(err))
		}
	}
	if s.FollowUps != nil {
		s.FollowUps.LockCourse(ctx, cert.Key(), "certificate issued")
	}
}

// Validate is the public lookup. It trusts the stored validity flag.
func (s *CertificateService) Validate(ctx context.Context, code string) (*ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		monitoring.CertificateValidations.WithLabelValues("not_found").Inc()
		return nil, util.ErrNotFound
	}
	cert, err := s.Store.Certificates().FindByCode(ctx, code)
	if errors.Is(err, util.ErrNotFound) {
		monitoring.CertificateValidations.WithLabelValues("not_found").Inc()
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	res := &ValidationResult{Valido: cert.Valido}
	if cert.Valido {
		res.Certificado = cert.Public()
		monitoring.CertificateValidations.WithLabelValues("valid").Inc()
	} else {
		monitoring.CertificateValidations.WithLabelValues("invalid").Inc()
	}
	return res, nil
}

// stillEligible re-derives eligibility from progress and evaluations.
func (s *CertificateService) stillEligible(ctx context.Context, c *model.CourseCertificate) (bool, error) {
	if !c.Valido {
		return false, nil
	}
	passed, err := s.Store.Evaluations().HasPassed(ctx, c.Key())
	if err != nil || !passed {
		return false, err
	}
	p, err := s.Store.Progress().Find(ctx, c.Key())
	if errors.Is(err, util.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsCertifiable(), nil
}

// GetOwn returns the collaborator's certificate only while the underlying records still qualify.
func (s *CertificateService) GetOwn(ctx context.Context, colaboradorID, cursoSlug string) (*CertificateView, error) {
	key := model.CourseKey{ColaboradorID: colaboradorID, CursoSlug: cursoSlug}
	cert, err := s.Store.Certificates().FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	ok, err := s.stillEligible(ctx, cert)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	return s.view(cert), nil
}

func (s *CertificateService) ListOwn(ctx context.Context, colaboradorID string) ([]*CertificateView, error) {
	certs, err := s.Store.Certificates().ListByColaborador(ctx, colaboradorID)
	if err != nil {
		return nil, err
	}
	out := make([]*CertificateView, 0, len(certs))
	for i := range certs {
		ok, err := s.stillEligible(ctx, &certs[i])
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s.view(&certs[i]))
		}
	}
	return out, nil
}
