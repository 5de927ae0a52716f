package controller

import (
	"encoding/json"
	"errors"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/service"
	"humaniq_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CursoController serves the collaborator side of the course lifecycle.
type CursoController struct {
	Catalog             *catalog.Catalog
	AvailabilityService *service.AvailabilityService
	ProgressService     *service.ProgressService
	EvaluationService   *service.EvaluationService
	CertificateService  *service.CertificateService
}

func NewCursoController(
	cat *catalog.Catalog,
	availabilityService *service.AvailabilityService,
	progressService *service.ProgressService,
	evaluationService *service.EvaluationService,
	certificateService *service.CertificateService,
) *CursoController {
	return &CursoController{
		Catalog:             cat,
		AvailabilityService: availabilityService,
		ProgressService:     progressService,
		EvaluationService:   evaluationService,
		CertificateService:  certificateService,
	}
}

// StartProgressRequest
// swagger:model StartProgressRequest
type StartProgressRequest struct {
	CursoID      string `json:"cursoId"`
	CursoSlug    string `json:"cursoSlug" binding:"required,slug"`
	TotalModulos int    `json:"totalModulos" binding:"omitempty,min=0"`
}

// CompleteModuleRequest
// swagger:model CompleteModuleRequest
type CompleteModuleRequest struct {
	TotalModulos int `json:"totalModulos" binding:"omitempty,min=0"`
}

// SubmitEvaluationRequest
// swagger:model SubmitEvaluationRequest
type SubmitEvaluationRequest struct {
	CursoID       string          `json:"cursoId"`
	Respostas     json.RawMessage `json:"respostas" swaggertype:"object"`
	Pontuacao     *float64        `json:"pontuacao"`
	TotalQuestoes *float64        `json:"totalQuestoes"`
	TempoGasto    int             `json:"tempoGasto" binding:"omitempty,min=0"`
}

// IssueCertificateRequest
// swagger:model IssueCertificateRequest
type IssueCertificateRequest struct {
	CursoID string `json:"cursoId"`
}

// slugParam reads and validates :cursoSlug. It writes the 400 itself.
func slugParam(ctx *gin.Context) (string, bool) {
	slug := ctx.Param("cursoSlug")
	if !util.IsSlug(slug) {
		util.BadRequest(ctx, "cursoSlug inválido")
		return "", false
	}
	return slug, true
}

func currentUser(ctx *gin.Context) *util.Claims {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
	}
	return user
}

// GetProgress godoc
// @Summary Consultar progresso do curso
// @Description Retorna o progresso do colaborador. Disponível mesmo se o curso foi bloqueado depois.
// @Tags Cursos
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 404 {object} util.Response
// @Router /cursos/progresso/{cursoSlug} [get]
func (c *CursoController) GetProgress(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetProgress(ctx.Request.Context(), user.UserID, slug)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// StartProgress godoc
// @Summary Iniciar curso
// @Description Cria o registro de progresso. Se já existir, retorna o registro sem alterações.
// @Tags Cursos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartProgressRequest true "Curso"
// @Success 200 {object} util.Response{data=model.CourseProgress} "já existente"
// @Success 201 {object} util.Response{data=model.CourseProgress} "criado"
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "curso não liberado"
// @Router /cursos/progresso [post]
func (c *CursoController) StartProgress(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req StartProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, created, err := c.ProgressService.StartProgress(ctx.Request.Context(), user.UserID, service.StartProgressInput{
		CursoID:      req.CursoID,
		CursoSlug:    req.CursoSlug,
		TotalModulos: req.TotalModulos,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, progress)
		return
	}
	util.Success(ctx, progress)
}

// CompleteModule godoc
// @Summary Concluir módulo
// @Description Marca o módulo como concluído e recalcula o progresso. Repetir a chamada não altera o conjunto.
// @Tags Cursos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Param moduloId path int true "ID do módulo"
// @Param request body CompleteModuleRequest false "Total de módulos quando o curso não está no catálogo"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "curso não liberado"
// @Router /cursos/progresso/{cursoSlug}/modulo/{moduloId} [post]
func (c *CursoController) CompleteModule(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}
	moduleID, err := strconv.Atoi(ctx.Param("moduloId"))
	if err != nil {
		util.HandleServiceError(ctx, util.ErrInvalidModule)
		return
	}

	var req CompleteModuleRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	progress, err := c.ProgressService.CompleteModule(ctx.Request.Context(), user.UserID, slug, moduleID, req.TotalModulos)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// SubmitEvaluation godoc
// @Summary Enviar avaliação final
// @Description Corrige uma tentativa. Aprovação com pontuação >= 70% do total; no máximo 3 tentativas.
// @Tags Cursos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Param request body SubmitEvaluationRequest true "Respostas"
// @Success 200 {object} util.Response{data=service.EvaluationResult}
// @Failure 400 {object} util.Response
// @Router /cursos/avaliacao/{cursoSlug} [post]
func (c *CursoController) SubmitEvaluation(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	var req SubmitEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EvaluationService.SubmitEvaluation(ctx.Request.Context(), user.UserID, slug, service.EvaluationSubmission{
		CursoID:       req.CursoID,
		Respostas:     req.Respostas,
		Pontuacao:     req.Pontuacao,
		TotalQuestoes: req.TotalQuestoes,
		TempoGasto:    req.TempoGasto,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// IssueCertificate godoc
// @Summary Emitir certificado
// @Description Emite o certificado após aprovação e conclusão de todos os módulos. Idempotente.
// @Tags Certificados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Param request body IssueCertificateRequest false "Curso"
// @Success 200 {object} util.Response{data=service.CertificateView} "já emitido"
// @Success 201 {object} util.Response{data=service.CertificateView} "emitido"
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "curso desconhecido"
// @Router /cursos/certificado/{cursoSlug} [post]
func (c *CursoController) IssueCertificate(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	cert, created, err := c.CertificateService.Issue(ctx.Request.Context(), user.Actor(), user.UserID, slug)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, cert)
		return
	}
	util.Success(ctx, cert)
}

// GetOwnCertificate godoc
// @Summary Consultar meu certificado
// @Description Retorna o certificado somente se progresso e avaliação ainda comprovam a conclusão.
// @Tags Certificados
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Success 200 {object} util.Response{data=service.CertificateView}
// @Failure 404 {object} util.Response
// @Router /cursos/certificado/{cursoSlug} [get]
func (c *CursoController) GetOwnCertificate(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	cert, err := c.CertificateService.GetOwn(ctx.Request.Context(), user.UserID, slug)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}

// ListOwnCertificates godoc
// @Summary Listar meus certificados
// @Tags Certificados
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CertificateView}
// @Router /cursos/meus-certificados [get]
func (c *CursoController) ListOwnCertificates(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	certs, err := c.CertificateService.ListOwn(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// ValidateCertificate godoc
// @Summary Validar certificado
// @Description Consulta pública pelo código de validação.
// @Tags Certificados
// @Produce json
// @Param codigo path string true "Código de validação"
// @Success 200 {object} util.Response{data=service.ValidationResult}
// @Failure 404 {object} util.Response{data=service.ValidationResult}
// @Failure 429 {object} util.Response
// @Router /cursos/validar-certificado/{codigo} [get]
func (c *CursoController) ValidateCertificate(ctx *gin.Context) {
	result, err := c.CertificateService.Validate(ctx.Request.Context(), ctx.Param("codigo"))
	if errors.Is(err, util.ErrNotFound) {
		util.ErrorWithData(ctx, http.StatusNotFound, "Certificado não encontrado", service.ValidationResult{Valido: false})
		return
	}
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// CheckAvailability godoc
// @Summary Verificar liberação do curso
// @Tags Cursos
// @Produce json
// @Security BearerAuth
// @Param cursoSlug path string true "Slug do curso"
// @Success 200 {object} util.Response{data=model.AvailabilityStatus}
// @Router /cursos/disponibilidade/{cursoSlug} [get]
func (c *CursoController) CheckAvailability(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	status, err := c.AvailabilityService.IsAvailable(ctx.Request.Context(), model.CourseKey{ColaboradorID: user.UserID, CursoSlug: slug})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// ListCatalog godoc
// @Summary Catálogo de cursos
// @Tags Cursos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]catalog.Course}
// @Router /cursos/catalogo [get]
func (c *CursoController) ListCatalog(ctx *gin.Context) {
	util.Success(ctx, c.Catalog.List())
}
