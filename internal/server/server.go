package server

import (
	"context"
	"net/http"

	"studybilling/internal/auth"
	"studybilling/internal/billing"
	"studybilling/internal/config"
	"studybilling/internal/course"
	"studybilling/internal/email"
	"studybilling/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(db)
	courseRepo := course.NewRepository(db)
	billingRepo := billing.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	courseHandler := course.NewHandler(course.NewService(courseRepo))
	billingHandler := billing.NewHandler(billing.NewService(billingRepo, userRepo, courseRepo))

	v1 := router.Group("/api/v1")

	public := v1.Group("/")
	public.Use(RateLimitMiddleware(10, 20))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/auth", userHandler.Login)
		public.POST("/token/refresh", userHandler.RefreshToken)
		public.GET("/courses", courseHandler.ListCourses)
		public.GET("/courses/:code", courseHandler.ShowCourse)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := v1.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/users/current", userHandler.CurrentUser)
		protected.POST("/courses/:code/pay", billingHandler.Pay)
		protected.POST("/deposit", billingHandler.Deposit)
		protected.GET("/transactions", billingHandler.Transactions)
	}

	admin := v1.Group("/")
	admin.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		admin.POST("/courses", courseHandler.CreateCourse)
		admin.POST("/courses/:code", courseHandler.EditCourse)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
