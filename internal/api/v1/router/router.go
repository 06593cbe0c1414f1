package router

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"photoai/docs"
	"photoai/internal/api/v1/handler"
	"photoai/internal/billing"
	"photoai/internal/config"
	"photoai/internal/db"
	"photoai/internal/falai"
	"photoai/internal/httpx"
	"photoai/internal/middleware"
	"photoai/internal/notify"
	"photoai/internal/pubsub"
	"photoai/internal/repository"
	"photoai/internal/service"
	"photoai/internal/storage"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	"gorm.io/gorm"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Generation service.GenerationService
	Uploads    service.UploadService
	Packs      service.PackService
	Payments   service.PaymentService
	Users      service.UserService
	Webhooks   service.WebhookService
	Hub        *notify.Hub
	// Ping reports database health for /healthz. Optional.
	Ping func(ctx context.Context) error
}

// New opens every backing connection, builds the services and returns the
// root handler. cleanup releases the connections.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	conn, err := db.Open(cfg.DatabaseURL, db.Options{
		SimpleProtocol: !cfg.IsDevelopment(),
		Logger:         logger,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		_ = db.Close(conn)
		return nil, nil, err
	}
	logger.Info().Str("dialect", db.DetectDialect(cfg.DatabaseURL)).Msg("Database connection successful")

	closers := []func() error{func() error { return db.Close(conn) }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error().Err(err).Msg("Failed to release resource")
			}
		}
	}

	presigner, err := storage.NewS3Presigner(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	hub := notify.NewHub(16, logger)
	sinks := notify.Fanout{hub}
	if cfg.PubSubEventsTopic != "" {
		publisher, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("create pub/sub publisher: %w", err)
		}
		sink := pubsub.NewEventSink(publisher, cfg.PubSubEventsTopic, logger)
		// Closers run in reverse, so pending events drain before the client closes.
		closers = append(closers, publisher.Close, sink.Wait)
		sinks = append(sinks, sink)
		logger.Info().Str("topic", cfg.PubSubEventsTopic).Msg("Publishing events to Pub/Sub")
	}

	svcs, err := buildServices(cfg, conn, presigner, falai.NewClient(cfg, logger), hub, sinks, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return NewHandler(cfg, svcs, logger), cleanup, nil
}

// NewServer wraps h in an http.Server whose request contexts are cancelled
// when Shutdown starts, so long-lived /events streams end instead of holding
// the drain open. There is no write timeout for the same streams.
func NewServer(addr string, h http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

func buildServices(
	cfg *config.Config,
	conn *gorm.DB,
	presigner service.Presigner,
	provider service.AIProvider,
	hub *notify.Hub,
	events notify.Sink,
	logger zerolog.Logger,
) (Services, error) {
	userRepo := repository.NewUserRepo(conn)
	creditRepo := repository.NewCreditRepo(conn)
	modelRepo := repository.NewModelRepo(conn)
	imageRepo := repository.NewImageRepo(conn)
	packRepo := repository.NewPackRepo(conn)
	subRepo := repository.NewSubscriptionRepo(conn)

	// Interfaces stay nil for processors without keys so the service can
	// report them as unavailable.
	var stripeGw service.StripeGateway
	if cfg.StripeSecretKey != "" {
		stripeGw = billing.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL)
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, Stripe payments disabled")
	}
	var razorpayGw service.RazorpayGateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		razorpayGw = billing.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		logger.Warn().Msg("Razorpay keys not set, Razorpay payments disabled")
	}

	creditSvc := service.NewCreditService(creditRepo, logger)
	userSvc, err := service.NewUserService(cfg.ClerkWebhookSecret, userRepo, logger)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Generation: service.NewGenerationService(creditSvc, provider, modelRepo, imageRepo, packRepo, service.Pricing{
			ImageCredits:        cfg.ImageGenCredits,
			TrainingCredits:     cfg.TrainModelCredits,
			MaxImagesPerRequest: cfg.MaxImagesPerRequest,
			SubmitConcurrency:   cfg.PackSubmitConcurrency,
		}, logger),
		Uploads:  service.NewUploadService(presigner, logger),
		Packs:    service.NewPackService(packRepo, logger),
		Payments: service.NewPaymentService(stripeGw, razorpayGw, subRepo, userRepo, creditSvc, events, logger),
		Users:    userSvc,
		Webhooks: service.NewWebhookService(provider, modelRepo, imageRepo, events, cfg.FalWebhookToken, logger),
		Hub:      hub,
		Ping: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}, nil
}

// NewHandler mounts every route on a ServeMux and wraps it with CORS and
// request logging.
func NewHandler(cfg *config.Config, svcs Services, logger zerolog.Logger) http.Handler {
	validate := handler.NewValidator()
	authMw := middleware.AuthMiddleware(cfg.ClerkJWTKey, logger)
	adminOnly := middleware.RequireAdmin(cfg.AdminRole, logger)
	adminMw := func(next http.Handler) http.Handler { return authMw(adminOnly(next)) }

	mux := http.NewServeMux()
	handler.NewAIHandler(svcs.Generation, svcs.Uploads, validate, logger).RegisterRoutes(mux, authMw)
	handler.NewPackHandler(svcs.Packs, validate, logger).RegisterRoutes(mux, adminMw)
	handler.NewPaymentHandler(svcs.Payments, validate, logger).RegisterRoutes(mux, authMw)
	handler.NewWebhookHandler(svcs.Users, svcs.Webhooks, svcs.Payments, logger).RegisterRoutes(mux)
	if svcs.Hub != nil {
		handler.NewEventsHandler(svcs.Hub, 0, logger).RegisterRoutes(mux, authMw)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if svcs.Ping != nil {
			if err := svcs.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("Health check failed")
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			httpx.HandleErr(w, r, logger, fmt.Errorf("read swagger doc: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}
