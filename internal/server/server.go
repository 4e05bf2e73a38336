package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/klimatech/storefront/internal/auth"
	authdomain "github.com/klimatech/storefront/internal/auth/domain"
	"github.com/klimatech/storefront/internal/blog"
	blogdomain "github.com/klimatech/storefront/internal/blog/domain"
	"github.com/klimatech/storefront/internal/catalog"
	catalogdomain "github.com/klimatech/storefront/internal/catalog/domain"
	"github.com/klimatech/storefront/internal/checkout"
	checkoutdomain "github.com/klimatech/storefront/internal/checkout/domain"
	"github.com/klimatech/storefront/internal/config"
	"github.com/klimatech/storefront/internal/notification"
	notificationdomain "github.com/klimatech/storefront/internal/notification/domain"
	"github.com/klimatech/storefront/internal/observability"
	obslogger "github.com/klimatech/storefront/internal/observability/logger"
	obsmetrics "github.com/klimatech/storefront/internal/observability/metrics"
	"github.com/klimatech/storefront/internal/order"
	orderdomain "github.com/klimatech/storefront/internal/order/domain"
	"github.com/klimatech/storefront/internal/pricelist"
	pricelistdomain "github.com/klimatech/storefront/internal/pricelist/domain"
	"github.com/klimatech/storefront/internal/providers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	providers.Module,
	auth.Module,
	blog.Module,
	catalog.Module,
	checkout.Module,
	notification.Module,
	order.Module,
	pricelist.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, metrics *obsmetrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Log:             log.Named("http"),
		Debug:           cfg.Environment == "development",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(metrics.GinMiddleware())
	r.Use(corsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	authSvc         authdomain.Service
	blogSvc         blogdomain.Service
	catalogSvc      catalogdomain.Service
	checkoutSvc     checkoutdomain.Service
	notificationSvc notificationdomain.Service
	orderSvc        orderdomain.Service
	pricelistSvc    pricelistdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	AuthSvc         authdomain.Service
	BlogSvc         blogdomain.Service
	CatalogSvc      catalogdomain.Service
	CheckoutSvc     checkoutdomain.Service
	NotificationSvc notificationdomain.Service
	OrderSvc        orderdomain.Service
	PricelistSvc    pricelistdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("server"),
		genID:           p.GenID,
		authSvc:         p.AuthSvc,
		blogSvc:         p.BlogSvc,
		catalogSvc:      p.CatalogSvc,
		checkoutSvc:     p.CheckoutSvc,
		notificationSvc: p.NotificationSvc,
		orderSvc:        p.OrderSvc,
		pricelistSvc:    p.PricelistSvc,
	}

	svc.registerAPIRoutes()
	svc.registerStaticRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.POST("/products", s.CreateProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.PUT("/products/:id/image", s.ReplaceProductImage)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.PUT("/update-discounts", s.BulkUpdateDiscounts)

	// -------- Price list --------
	api.GET("/price", s.GetPriceList)
	api.PUT("/update-discount-Pricelist", s.UpdatePriceListDiscount)

	// -------- Notifications --------
	api.POST("/notifications", s.CreateNotification)
	api.GET("/notifications", s.ListNotifications)
	api.GET("/notifications/:id", s.GetNotificationByID)
	api.PUT("/notifications/:id/read", s.MarkNotificationRead)
	api.DELETE("/notifications/:id/delete", s.DeleteNotification)

	// -------- Orders --------
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/user/:userId", s.ListUserOrders)
	api.GET("/orders/all", s.ListAllOrders)
	api.GET("/orders/stats", s.GetOrderStats)
	api.PUT("/orders/:orderId/status", s.UpdateOrderStatus)

	// -------- Auth --------
	api.POST("/register", s.Register)
	api.POST("/login", s.Login)
	api.POST("/verify-email", s.VerifyEmail)
	api.POST("/resend-verification", s.ResendVerification)
	api.POST("/request-password-reset", s.RequestPasswordReset)
	api.POST("/reset-password", s.ResetPassword)
	api.POST("/verify-token", s.VerifyResetToken)
	api.POST("/change-password", s.ChangePassword)
	api.POST("/update-user-info", s.UpdateUserInfo)

	// -------- Blog --------
	api.GET("/blog-posts", s.ListBlogPosts)
	api.POST("/blog-posts", s.CreateBlogPost)
	api.DELETE("/blog-posts/:id", s.DeleteBlogPost)
}

func (s *Server) registerStaticRoutes() {
	s.engine.Static("/uploads", s.cfg.UploadsDir)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
