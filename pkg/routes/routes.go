package pkg

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"NGOConnect/internal/admin"
	"NGOConnect/internal/auth"
	"NGOConnect/internal/config"
	"NGOConnect/internal/dashboard"
	"NGOConnect/internal/project"
	"NGOConnect/internal/task"
	"NGOConnect/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(config.NewLogger),
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(project.NewProjectRepository),
	fx.Provide(project.NewProjectService),
	fx.Provide(project.NewProjectHandler),
	fx.Provide(task.NewTaskRepository),
	fx.Provide(task.NewLocalStorage),
	fx.Provide(task.NewTaskService),
	fx.Provide(task.NewTaskHandler),
	fx.Provide(task.NewOverdueScheduler),
	fx.Provide(admin.NewAdminService),
	fx.Provide(admin.NewAdminHandler),
	fx.Provide(dashboard.NewDashboardService),
	fx.Provide(dashboard.NewDashboardHandler),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(func(lc fx.Lifecycle, s *task.OverdueScheduler) { s.Start(lc) }),
)

func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting http server", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down http server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(
	e *echo.Echo,
	users *auth.UserRepository,
	files *task.LocalStorage,
	authHandler *auth.AuthHandler,
	projectHandler *project.ProjectHandler,
	taskHandler *task.TaskHandler,
	adminHandler *admin.AdminHandler,
	dashboardHandler *dashboard.DashboardHandler,
) {
	e.Static("/uploads", files.Dir())

	api := e.Group("/api/v1")

	userRoutes := api.Group("/users")
	userRoutes.POST("/register", authHandler.Register)
	userRoutes.POST("/login", authHandler.Login)
	userRoutes.GET("/logout", authHandler.Logout)
	userRoutes.GET("/verify-email/:token", authHandler.VerifyEmail)
	userRoutes.POST("/resend-verification", authHandler.ResendVerification)
	userRoutes.GET("/profile", authHandler.Profile, middleware.JWT(users))

	projectRoutes := api.Group("/projects", middleware.JWT(users))
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.GET("/:projectId", projectHandler.Get)
	projectRoutes.PUT("/:projectId", projectHandler.Update)
	projectRoutes.DELETE("/:projectId", projectHandler.Delete)
	projectRoutes.GET("/:projectId/tasks", taskHandler.ListByProject)

	taskRoutes := api.Group("/tasks", middleware.JWT(users))
	taskRoutes.POST("", taskHandler.Create)
	taskRoutes.PUT("/:taskId", taskHandler.Update)
	taskRoutes.DELETE("/:taskId", taskHandler.Delete)
	taskRoutes.POST("/:taskId/submit", taskHandler.Submit, echomw.BodyLimit("10M"))

	adminRoutes := api.Group("/admin", middleware.JWT(users), middleware.Casbin)
	adminRoutes.GET("/dashboard/:userId", dashboardHandler.Admin)
	adminRoutes.POST("/ngos", adminHandler.CreateNGO)
	adminRoutes.GET("/ngos", adminHandler.ListNGOs)
	adminRoutes.POST("/frontliners", adminHandler.CreateFrontliner)
	adminRoutes.GET("/frontliners", adminHandler.ListFrontliners)
	adminRoutes.PUT("/settings/:userId", adminHandler.UpdateSettings)
	adminRoutes.PATCH("/users/:userId/status", adminHandler.ToggleUserStatus)

	ngoRoutes := api.Group("/ngo", middleware.JWT(users), middleware.Casbin)
	ngoRoutes.GET("/dashboard/:userId", dashboardHandler.NGO)
	ngoRoutes.GET("/profile", authHandler.Profile)
	ngoRoutes.PUT("/profile", authHandler.UpdateProfile)
	ngoRoutes.GET("/projects", projectHandler.NGOList)
	ngoRoutes.POST("/projects", projectHandler.NGOCreate)
	ngoRoutes.GET("/projects/:projectId", projectHandler.NGOGet)
	ngoRoutes.PUT("/projects/:projectId", projectHandler.NGOUpdate)
	ngoRoutes.DELETE("/projects/:projectId", projectHandler.NGODelete)
	ngoRoutes.GET("/funding-status", projectHandler.FundingStatus)
	ngoRoutes.POST("/funding-request", projectHandler.SubmitFundingRequest)
	ngoRoutes.GET("/reports", projectHandler.Reports)
	ngoRoutes.POST("/generate-report", projectHandler.GenerateReport)

	frontlinerRoutes := api.Group("/frontliner", middleware.JWT(users), middleware.Casbin)
	frontlinerRoutes.GET("/dashboard/:userId", dashboardHandler.Frontliner)
	frontlinerRoutes.GET("/profile", authHandler.Profile)
	frontlinerRoutes.PUT("/profile", authHandler.UpdateProfile)
	frontlinerRoutes.GET("/projects", projectHandler.AssignedList)
	frontlinerRoutes.GET("/projects/:projectId", projectHandler.AssignedGet)
	frontlinerRoutes.PUT("/projects/:projectId/progress", projectHandler.UpdateProgress)
	frontlinerRoutes.POST("/projects/:projectId/submit-report", projectHandler.SubmitReport)
	frontlinerRoutes.GET("/tasks", taskHandler.ListOwn)
	frontlinerRoutes.PATCH("/tasks/:taskId/status", taskHandler.UpdateOwnStatus)
}
