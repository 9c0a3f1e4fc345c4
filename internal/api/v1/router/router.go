package router

import (
	"context"
	"net/http"
	"time"

	"coursehub/internal/api/v1/handler"
	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/middleware"
	"coursehub/internal/repository"
	"coursehub/internal/service"
	"coursehub/internal/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the store, repositories, services, handlers and middleware into
// the HTTP handler. The returned Store must be closed on shutdown.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *repository.Store, error) {
	// 1. Open the document store connection
	store, err := repository.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Document store connection successful")

	// 2. Optional S3 client for course image uploads
	var s3Client *s3.Client
	if cfg.S3URL != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		s3Client = s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
	}

	// 3. Validator and credential services
	validate := validation.New(cfg.StrictPassword)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokenTTL := time.Duration(cfg.TokenTTLMin) * time.Minute
	userTokens := auth.NewTokenService(cfg.JWTUserSecret, tokenTTL)
	creatorTokens := auth.NewTokenService(cfg.JWTCreatorSecret, tokenTTL)

	// 4. Repositories, services, handlers
	userRepo := repository.NewUserRepo(store)
	creatorRepo := repository.NewCreatorRepo(store)
	courseRepo := repository.NewCourseRepo(store)
	purchaseRepo := repository.NewPurchaseRepo(store)

	userSvc := service.NewUserService(userRepo, courseRepo, purchaseRepo, hasher, userTokens)
	creatorSvc := service.NewCreatorService(creatorRepo, courseRepo, hasher, creatorTokens)
	courseSvc := service.NewCourseService(courseRepo, purchaseRepo, cfg.EnforceCourseExistsOnPurchase, cfg.PreventDuplicatePurchase)
	imageSvc := service.NewImageService(s3Client, cfg.S3Bucket, cfg.S3PublicURL, logger)

	userHandler := handler.NewUserHandler(userSvc, validate, cfg.CookieSecure, logger)
	creatorHandler := handler.NewCreatorHandler(creatorSvc, imageSvc, validate, cfg.CookieSecure, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)

	// 5. Middleware
	userAuth := middleware.Auth(userTokens, middleware.UserIDKey)
	creatorAuth := middleware.Auth(creatorTokens, middleware.CreatorIDKey)

	var counter middleware.Counter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		counter = middleware.NewRedisCounter(redis.NewClient(opts))
	} else {
		counter = middleware.NewMemoryCounter()
	}
	rateLimit := middleware.RateLimit(counter, cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowMin)*time.Minute, logger)

	// 6. Routes, mounted under /api/v1
	apiMux := http.NewServeMux()
	userHandler.RegisterRoutes(apiMux, userAuth)
	creatorHandler.RegisterRoutes(apiMux, creatorAuth)
	courseHandler.RegisterRoutes(apiMux, userAuth)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", rateLimit(apiMux)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// 7. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.Logger(logger)(c.Handler(mux)), store, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services. See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
