package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deals-service/cache"
	"deals-service/controllers"
	"deals-service/database"
	"deals-service/logger"
	"deals-service/media"
	"deals-service/middleware"
	"deals-service/repository"
	"deals-service/routes"
	"deals-service/services"

	aws_pkg "deals-service/pkg/aws"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	ctx := context.Background()

	cfg, err := LoadConfig(ctx)
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	// --- AWS setup (non-fatal unless a provider needs it) ---
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)

	var shipper io.Writer
	if cfg.CloudWatchEnabled && awsErr == nil {
		if w, err := aws_pkg.NewLogWriter(ctx, awsCfg, serviceName); err == nil {
			shipper = w
		}
	}
	log, err := logger.New(cfg.AppEnv, shipper)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()
	if awsErr != nil {
		log.Warn("AWS config unavailable, CloudWatch disabled", zap.Error(awsErr))
	}

	var metricsClient *aws_pkg.MetricsClient
	if awsErr == nil {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg)
	}

	// --- Database ---
	mongoClient, db, err := database.Connect(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Index creation failed", zap.Error(err))
	}

	// --- Media host ---
	var uploader media.Uploader
	switch cfg.MediaProvider {
	case "s3":
		if awsErr != nil {
			log.Fatal("S3 media provider requires AWS config", zap.Error(awsErr))
		}
		uploader = media.NewS3Uploader(aws_pkg.NewS3Client(awsCfg), cfg.S3Bucket, cfg.S3Prefix, cfg.S3Endpoint, cfg.AWSRegion, cfg.CloudFrontDomain)
	default:
		cld, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal("Cloudinary init failed", zap.Error(err))
		}
		uploader = cld
	}
	log.Info("Media provider ready", zap.String("provider", cfg.MediaProvider))

	// --- Redis listing cache (optional) ---
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn("Invalid REDIS_URL, listing cache disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				log.Warn("Redis unreachable, listing cache will miss until it recovers", zap.Error(err))
			}
			cancel()
		}
	}
	listingCache := cache.NewListingCache(redisClient).WithMetrics(metricsClient)

	// --- Dependency injection ---
	storeRepo := repository.NewStoreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	userRepo := repository.NewUserRepository(db)

	analyticsService := services.NewAnalyticsService(couponRepo, storeRepo, categoryRepo, userRepo, metricsClient, log)
	userService := services.NewUserService(userRepo, log)
	storeService := services.NewStoreService(storeRepo, uploader, log)
	categoryService := services.NewCategoryService(categoryRepo, uploader, log)
	couponService := services.NewCouponService(couponRepo, metricsClient, log)

	// --- HTTP router ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	done := make(chan struct{})
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.MetricsMiddleware(metricsClient, serviceName),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Every(time.Minute/120), 60, 5*time.Minute), done),
		middleware.Timeout(30*time.Second),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	api := r.Group("/api")
	routes.RegisterAdminRoutes(api, controllers.NewAdminController(analyticsService, userService), auth)
	routes.RegisterStoreRoutes(api, controllers.NewStoreController(storeService, listingCache), auth)
	routes.RegisterCategoryRoutes(api, controllers.NewCategoryController(categoryService, listingCache), auth)
	routes.RegisterCouponRoutes(api, controllers.NewCouponController(couponService), auth)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("Deals service started", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	close(done)

	if err := database.Close(mongoClient); err != nil {
		log.Error("MongoDB disconnect error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}
	log.Info("Deals service stopped gracefully")
}
