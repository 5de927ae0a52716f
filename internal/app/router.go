package app

import (
	"humaniq_backend/docs"
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/middleware"
	"humaniq_backend/internal/model"
	"humaniq_backend/pkg/monitoring"
	"humaniq_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. public
	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 2. collaborator
		a.registerCollaboratorRoutes(authGroup, c)

		// 3. company staff
		a.registerCompanyRoutes(authGroup, c)

		// 4. admin
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/cursos/validar-certificado/:codigo",
			security.RateLimiter(cfg.RateLimit.ValidationPerHour, time.Hour),
			c.curso.ValidateCertificate)
	}
}

func (a *App) registerCollaboratorRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/cursos/catalogo", c.curso.ListCatalog)

	cursos := rg.Group("/cursos")
	cursos.Use(middleware.RoleMiddleware(model.RoleColaborador))
	{
		cursos.GET("/progresso/:cursoSlug", c.curso.GetProgress)
		cursos.POST("/progresso", c.curso.StartProgress)
		cursos.POST("/progresso/:cursoSlug/modulo/:moduloId", c.curso.CompleteModule)
		cursos.POST("/avaliacao/:cursoSlug", c.curso.SubmitEvaluation)
		cursos.POST("/certificado/:cursoSlug", c.curso.IssueCertificate)
		cursos.GET("/certificado/:cursoSlug", c.curso.GetOwnCertificate)
		cursos.GET("/meus-certificados", c.curso.ListOwnCertificates)
		cursos.GET("/disponibilidade/:cursoSlug", c.curso.CheckAvailability)
	}
}

func (a *App) registerCompanyRoutes(rg *gin.RouterGroup, c *controllers) {
	colaboradores := rg.Group("/colaboradores")
	colaboradores.Use(middleware.RoleMiddleware(model.RoleEmpresa))
	{
		colaboradores.GET("/:id/cursos-detalhes", c.colaborador.CourseDetails)
		colaboradores.PUT("/:id/cursos/:cursoSlug/disponibilidade", c.colaborador.SetAvailability)
		colaboradores.DELETE("/remover-cursos", c.colaborador.PurgeCollaborator)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/cursos/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.DELETE("/purge-cursos-dados", c.colaborador.PurgeAll)
	}
}
