// Package api serves the Little Lemon REST API over gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/example/littlelemon/api/docs"
	"github.com/example/littlelemon/pkg/config"
	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Services are the domain services the handlers call into.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Orders   *service.OrderService
	Roles    *service.RoleDirectory
	Ratings  *service.RatingService
	Accounts *service.AccountService
	Audit    *service.AuditService
}

// Limiter counts a request against key in a fixed window and reports
// whether it is still allowed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Server struct {
	config     *config.Config
	services   Services
	limiter    Limiter
	logger     *zap.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the router. A nil limiter turns throttling off.
func NewServer(cfg *config.Config, services Services, limiter Limiter, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	s := &Server{
		config:   cfg,
		services: services,
		limiter:  limiter,
		logger:   logger.Named("api"),
		router:   router,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.Use(s.authenticate(), s.throttle())
	{
		menu := api.Group("/menu-items")
		{
			menu.GET("", s.listMenuItems)
			menu.POST("", s.createMenuItem)
			menu.GET("/export", s.exportMenuItems)
			menu.GET("/:id", s.getMenuItem)
			menu.PUT("/:id", s.replaceMenuItem)
			menu.PATCH("/:id", s.patchMenuItem)
			menu.DELETE("/:id", s.deleteMenuItem)
		}

		groups := api.Group("/groups")
		{
			s.groupRoutes(groups.Group("/manager/users"), models.RoleManager)
			s.groupRoutes(groups.Group("/delivery-crew/users"), models.RoleDeliveryCrew)
		}

		cart := api.Group("/cart/menu-items")
		{
			cart.GET("", s.listCart)
			cart.POST("", s.addToCart)
			cart.DELETE("", s.clearCart)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", s.listOrders)
			orders.POST("", s.placeOrder)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id", s.replaceOrder)
			orders.PATCH("/:id", s.patchOrder)
			orders.DELETE("/:id", s.deleteOrder)
		}

		ratings := api.Group("/ratings")
		{
			ratings.GET("", s.listRatings)
			ratings.POST("", s.createRating)
		}

		api.GET("/audit-logs", s.listAuditLogs)

		accounts := api.Group("/auth")
		{
			accounts.POST("/users", s.register)
			accounts.POST("/token/login", s.login)
			accounts.GET("/users/me", s.me)
		}
	}

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("API server starting", zap.String("address", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
