// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"mealbox-service/internal/cache"
	"mealbox-service/internal/config"
	"mealbox-service/internal/db"
	couponHandler "mealbox-service/internal/handlers/coupon"
	coverageHandler "mealbox-service/internal/handlers/coverage"
	discountHandler "mealbox-service/internal/handlers/discount"
	pricingHandler "mealbox-service/internal/handlers/pricing"
	refundHandler "mealbox-service/internal/handlers/refund"
	wsHandler "mealbox-service/internal/handlers/websocket"
	"mealbox-service/internal/middleware"
	"mealbox-service/internal/pkg/jwt"
	"mealbox-service/internal/repository/postgres"
	couponUsecase "mealbox-service/internal/service/coupon"
	discountUsecase "mealbox-service/internal/service/discount"
	geoUsecase "mealbox-service/internal/service/geo"
	pricingUsecase "mealbox-service/internal/service/pricing"
	refundUsecase "mealbox-service/internal/service/refund"
	"mealbox-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisCfg := db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	}

	redisClient, err := db.NewRedisClient(redisCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] ✅ Connected successfully")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Verifier -----
	verifier, err := jwt.LoadVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	// ----- Repositories -----
	discountRepo := postgres.NewDurationDiscountRepository(pool)
	couponRepo := postgres.NewCouponRepository(pool)
	policyRepo := postgres.NewRefundPolicyRepository(pool)
	regionRepo := postgres.NewCoverageRegionRepository(pool)

	// ----- Coupon Cache -----
	couponCache := cache.NewCouponCache(redisClient)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(context.Background())

	// ----- Services (Usecases) -----
	discountService := discountUsecase.NewDiscountService(discountRepo, hub, logger)
	couponService := couponUsecase.NewCouponService(couponRepo, couponCache, hub, logger)
	refundService := refundUsecase.NewRefundService(policyRepo, hub, logger)
	coverageService := geoUsecase.NewCoverageService(regionRepo, hub, logger)
	pricingService := pricingUsecase.NewPricingService(discountService, couponService, logger)

	// ----- Handlers -----
	pricingHandlerInst := pricingHandler.NewPricingHandler(pricingService)
	couponHandlerInst := couponHandler.NewCouponHandler(couponService)
	discountHandlerInst := discountHandler.NewDiscountHandler(discountService)
	refundHandlerInst := refundHandler.NewRefundHandler(refundService)
	coverageHandlerInst := coverageHandler.NewCoverageHandler(coverageService)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		PricingHandler:  pricingHandlerInst,
		CouponHandler:   couponHandlerInst,
		DiscountHandler: discountHandlerInst,
		RefundHandler:   refundHandlerInst,
		CoverageHandler: coverageHandlerInst,
		WSHandler:       wsHandlerInst,
		AuthMiddleware:  authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
