package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/server/http/handlers"
	"github.com/polkiloo/procurement/internal/server/http/middleware"
	"github.com/polkiloo/procurement/internal/usecase"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ProcurementFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, cfg.TokenTTL)
	userHandler := handlers.NewUserHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	analyticsHandler := handlers.NewAnalyticsHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	authed := middleware.AuthRequired(facade)
	optional := middleware.OptionalAuth(facade)
	roles := func(allowed ...model.Role) []gin.HandlerFunc {
		return []gin.HandlerFunc{authed, middleware.RequireRoles(allowed...)}
	}
	admin := roles(model.RoleAdmin)
	adminOrIntering := roles(model.RoleAdmin, model.RoleIntering)
	adminOrRecourse := roles(model.RoleAdmin, model.RoleRecourse)
	adminOrContractor := roles(model.RoleAdmin, model.RoleContractor)
	with := func(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, chain...), h)
	}

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp/:reference", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)

	user := api.Group("/user")
	user.POST("", with(admin, userHandler.Create)...)
	user.GET("", with(admin, userHandler.List)...)
	user.GET("/:id", authed, userHandler.Get)
	user.PUT("/:id", with(admin, userHandler.Update)...)
	user.DELETE("/:id", with(admin, userHandler.Delete)...)

	fathers := api.Group("/classficationMaterial", adminOrIntering...)
	fathers.POST("", catalogHandler.CreateFather)
	fathers.GET("", catalogHandler.ListFathers)
	fathers.PUT("/:id", catalogHandler.UpdateFather)
	fathers.DELETE("/:id", catalogHandler.DeleteFather)

	sons := api.Group("/classficationMaterialSon")
	sons.POST("", with(adminOrIntering, catalogHandler.CreateSon)...)
	sons.GET("", with(admin, catalogHandler.ListSons)...)
	sons.PUT("/:id", with(admin, catalogHandler.UpdateSon)...)
	sons.DELETE("/:id", with(admin, catalogHandler.DeleteSon)...)

	materials := api.Group("/material")
	materials.GET("", authed, catalogHandler.ListMaterials)
	materials.POST("", with(adminOrIntering, catalogHandler.CreateMaterial)...)
	materials.PUT("/:id", with(adminOrIntering, catalogHandler.UpdateMaterial)...)
	materials.DELETE("/:id", with(adminOrIntering, catalogHandler.DeleteMaterial)...)

	type orderRoutes interface {
		Create(*gin.Context)
		List(*gin.Context)
		ListByContractor(*gin.Context)
		Get(*gin.Context)
		UpdateStatus(*gin.Context)
	}
	contractorOrders := []struct {
		path    string
		handler orderRoutes
	}{
		{"/orderMaterial", handlers.NewOrderHandler[model.MaterialOrder, usecase.MaterialOrderInput](facade.MaterialOrders())},
		{"/orderFinance", handlers.NewOrderHandler[model.FinanceOrder, usecase.FinanceOrderInput](facade.FinanceOrders())},
		{"/orderQualification", handlers.NewOrderHandler[model.QualificationOrder, usecase.QualificationOrderInput](facade.QualificationOrders())},
	}
	for _, route := range contractorOrders {
		h := route.handler
		group := api.Group(route.path)
		group.POST("", optional, h.Create)
		group.GET("", with(admin, h.List)...)
		group.GET("/:id", with(admin, h.Get)...)
		group.PUT("/status/:id", with(admin, h.UpdateStatus)...)
		group.PATCH("/status/:id", with(admin, h.UpdateStatus)...)
		group.GET("/contractor/:id", with(adminOrContractor, h.ListByContractor)...)
	}

	recourse := handlers.NewRecourseOrderHandler(facade.RecourseOrders())
	recourseOrders := api.Group("/recourseUserOrder")
	recourseOrders.POST("", with(adminOrIntering, recourse.Create)...)
	recourseOrders.GET("", with(adminOrRecourse, recourse.List)...)
	recourseOrders.GET("/:id", with(admin, recourse.Get)...)
	recourseOrders.PATCH("/:id/status", with(adminOrRecourse, recourse.UpdateStatus)...)
	recourseOrders.PUT("/status/:id", with(adminOrRecourse, recourse.UpdateStatus)...)
	recourseOrders.PATCH("/status/:id", with(adminOrRecourse, recourse.UpdateStatus)...)
	recourseOrders.PUT("/bill/:id", with(admin, recourse.AttachBill)...)

	orders := api.Group("/orders", admin...)
	orders.GET("", analyticsHandler.Counts)
	orders.GET("/chart/weekly", analyticsHandler.WeeklyOrders)
	orders.GET("/chart/visits", analyticsHandler.VisitedOrders)

	analytics := api.Group("/analytics")
	analytics.POST("/visit", analyticsHandler.RecordVisit)
	analytics.GET("/unique-weekly", with(admin, analyticsHandler.UniqueWeekly)...)

	notifications := api.Group("/notifications", admin...)
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.PUT("/show", notificationHandler.MarkShown)
	notifications.GET("/:id", notificationHandler.Get)
	notifications.DELETE("/:id", notificationHandler.Delete)

	return engine
}
