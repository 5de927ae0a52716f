package controller

import (
	"humaniq_backend/internal/service"
	"humaniq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ColaboradorController serves the company and admin views of collaborators' courses.
type ColaboradorController struct {
	ColaboradorService  *service.ColaboradorService
	AvailabilityService *service.AvailabilityService
}

func NewColaboradorController(colaboradorService *service.ColaboradorService, availabilityService *service.AvailabilityService) *ColaboradorController {
	return &ColaboradorController{
		ColaboradorService:  colaboradorService,
		AvailabilityService: availabilityService,
	}
}

// SetAvailabilityRequest
// swagger:model SetAvailabilityRequest
type SetAvailabilityRequest struct {
	Disponivel        *bool  `json:"disponivel" binding:"required"`
	PeriodicidadeDias *int   `json:"periodicidadeDias" binding:"omitempty,min=0,max=3650"`
	Motivo            string `json:"motivo" binding:"max=255"`
}

// PurgeCollaboratorRequest
// swagger:model PurgeCollaboratorRequest
type PurgeCollaboratorRequest struct {
	ColaboradorID string `json:"colaboradorId" binding:"required"`
}

// PurgeAllRequest
// swagger:model PurgeAllRequest
type PurgeAllRequest struct {
	Confirmar bool `json:"confirmar"`
}

// CourseDetails godoc
// @Summary Cursos de um colaborador
// @Description Catálogo, progresso, certificado e liberação de cada curso do colaborador.
// @Tags Colaboradores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do colaborador"
// @Success 200 {object} util.Response{data=service.CollaboratorCourses}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /colaboradores/{id}/cursos-detalhes [get]
func (c *ColaboradorController) CourseDetails(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	details, err := c.ColaboradorService.CourseDetails(ctx.Request.Context(), user.Actor(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, details)
}

// SetAvailability godoc
// @Summary Liberar ou bloquear curso
// @Description Com periodicidade, o bloqueio agenda a próxima liberação automática.
// @Tags Colaboradores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do colaborador"
// @Param cursoSlug path string true "Slug do curso"
// @Param request body SetAvailabilityRequest true "Liberação"
// @Success 200 {object} util.Response{data=model.CourseAvailability}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /colaboradores/{id}/cursos/{cursoSlug}/disponibilidade [put]
func (c *ColaboradorController) SetAvailability(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	slug, ok := slugParam(ctx)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AvailabilityService.SetAvailability(ctx.Request.Context(), user.Actor(), ctx.Param("id"), slug, service.SetAvailabilityInput{
		Disponivel:        *req.Disponivel,
		PeriodicidadeDias: req.PeriodicidadeDias,
		Motivo:            req.Motivo,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// PurgeCollaborator godoc
// @Summary Remover dados de cursos do colaborador
// @Description Exclusão irreversível de progresso, avaliações, certificados e liberações. Auditada.
// @Tags Colaboradores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurgeCollaboratorRequest true "Colaborador"
// @Success 200 {object} util.Response{data=model.PurgeResult}
// @Failure 403 {object} util.Response
// @Router /colaboradores/remover-cursos [delete]
func (c *ColaboradorController) PurgeCollaborator(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req PurgeCollaboratorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.ColaboradorService.PurgeCollaborator(ctx.Request.Context(), user.Actor(), req.ColaboradorID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// PurgeAll godoc
// @Summary Remover todos os dados de cursos
// @Description Exclusão irreversível de todos os registros de cursos. Exige {"confirmar": true}.
// @Tags Administração
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurgeAllRequest true "Confirmação"
// @Success 200 {object} util.Response{data=model.PurgeResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /cursos/admin/purge-cursos-dados [delete]
func (c *ColaboradorController) PurgeAll(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req PurgeAllRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.ColaboradorService.PurgeAll(ctx.Request.Context(), user.Actor(), req.Confirmar)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
