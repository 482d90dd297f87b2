package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/config"
	"github.com/noah-isme/backend-kasir/internal/db"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/expense"
	"github.com/noah-isme/backend-kasir/internal/health"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/party"
	"github.com/noah-isme/backend-kasir/internal/pos"
	"github.com/noah-isme/backend-kasir/internal/purchase"
	"github.com/noah-isme/backend-kasir/internal/ratelimit"
	"github.com/noah-isme/backend-kasir/internal/report"
	"github.com/noah-isme/backend-kasir/internal/resilience"
	"github.com/noah-isme/backend-kasir/internal/sale"
	"github.com/noah-isme/backend-kasir/internal/security"
	"github.com/noah-isme/backend-kasir/internal/storeclient"
	"github.com/noah-isme/backend-kasir/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "kasir")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	shutdownTracer, err := obs.InitTracer(context.Background(), obs.TracingConfig{
		Enabled:       cfg.TracingEnabled,
		ServiceName:   cfg.ServiceName,
		Endpoint:      cfg.OTLPEndpoint,
		Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
		SamplingRatio: cfg.TraceSampler,
		Environment:   cfg.AppEnv,
	})
	tracingEnabled := cfg.TracingEnabled
	if err != nil {
		logger.Error().Err(err).Msg("initialise tracing")
		tracingEnabled = false
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Error().Err(err).Msg("shutdown tracer")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	pool := mustInitDatabase(ctx, cfg, logger)
	defer pool.Close()
	queries := dbgen.New(pool)

	redisClient := mustInitRedis(ctx, cfg, logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis uri for tasks")
	}
	taskClient := asynq.NewClient(redisOpt)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	bus := &events.Bus{
		Store:     queries,
		Notifiers: []events.Notifier{tasks.Notifier{Client: taskClient, MaxRetry: 5, Retention: 24 * time.Hour}},
	}

	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Queries:           queries,
		Cache:             catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
		DefaultLimit:      20,
		MaxLimit:          100,
		LowStockThreshold: cfg.LowStockThreshold,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService})

	partyHandler := &party.Handler{Service: party.NewService(queries)}
	expenseHandler := &expense.Handler{Service: expense.NewService(queries)}

	saleService := &sale.Service{
		Tx:      sale.PoolTx(pool),
		Queries: queries,
		Events:  bus,
		Logger:  logger.With().Str("component", "sale").Logger(),
	}
	saleHandler := &sale.Handler{Service: saleService}

	purchaseService := &purchase.Service{
		Tx:      purchase.PoolTx(pool),
		Queries: queries,
		Events:  bus,
		Logger:  logger.With().Str("component", "purchase").Logger(),
	}
	purchaseHandler := &purchase.Handler{Service: purchaseService}

	reportService := &report.Service{Q: queries, R: redisClient, TTL: cfg.ReportCacheTTL, DefaultRange: 30}
	reportHandler := &report.Handler{Svc: reportService}

	var (
		lookup pos.ProductLookup = pos.CatalogLookup{Catalog: catalogService}
		writer pos.SaleWriter    = pos.SaleStore{Sales: saleService}
	)
	if cfg.RemoteStore() {
		breaker := resilience.NewBreaker(cfg.StoreBreakerMinReq, cfg.StoreBreakerFailRate, cfg.StoreBreakerOpenFor).
			WithTarget("store").
			WithLogger(logger)
		client, err := storeclient.New(storeclient.Config{
			BaseURL: cfg.POSStoreURL,
			Timeout: cfg.POSStoreTimeout,
			Breaker: breaker,
			Logger:  logger.With().Str("component", "storeclient").Logger(),
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise store client")
		}
		lookup, writer = client, client
		logger.Info().Str("store_url", cfg.POSStoreURL).Msg("pos checkout uses remote store")
	}
	registry := pos.NewRegistry(pos.RegistryConfig{
		TTL:               cfg.POSSessionTTL,
		DefaultTaxPercent: cfg.POSDefaultTaxPercent,
		Logger:            logger.With().Str("component", "pos").Logger(),
	})
	go registry.RunJanitor(ctx, 0)
	posHandler := pos.NewHandler(pos.HandlerConfig{Service: &pos.Service{
		Sessions: registry,
		Products: lookup,
		Sales:    writer,
		Logger:   logger.With().Str("component", "pos").Logger(),
	}})

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	salesLimiter, err := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitSales, "ratelimit:sales:")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise sales rate limiter")
	}
	salesLimit := ratelimit.Handler{
		Limiter: salesLimiter,
		Key:     ratelimit.ByClientIP("sales"),
		OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter unavailable") },
	}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.CORS(strings.Join(cfg.CORSAllowedOrigins, ",")))
	r.Use(security.Headers{Enable: true, EnableHSTS: cfg.AppEnv == "production"}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      health.Probes{DB: pool, Redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/categories", func(c chi.Router) {
			c.Get("/", catalogHandler.Categories)
			c.With(idem.Middleware).Post("/", catalogHandler.CreateCategory)
			c.Get("/{id}", catalogHandler.Category)
			c.Put("/{id}", catalogHandler.UpdateCategory)
			c.Delete("/{id}", catalogHandler.DeleteCategory)
		})

		v.Route("/products", func(p chi.Router) {
			p.Get("/", catalogHandler.Products)
			p.With(idem.Middleware).Post("/", catalogHandler.CreateProduct)
			p.Get("/sku/{sku}", catalogHandler.ProductBySKU)
			p.Get("/{id}", catalogHandler.Product)
			p.Put("/{id}", catalogHandler.UpdateProduct)
			p.Delete("/{id}", catalogHandler.DeleteProduct)
		})

		v.Route("/customers", func(c chi.Router) {
			c.Get("/", partyHandler.ListCustomers)
			c.With(idem.Middleware).Post("/", partyHandler.CreateCustomer)
			c.Get("/{id}", partyHandler.GetCustomer)
			c.Put("/{id}", partyHandler.UpdateCustomer)
			c.Delete("/{id}", partyHandler.DeleteCustomer)
		})

		v.Route("/suppliers", func(s chi.Router) {
			s.Get("/", partyHandler.ListSuppliers)
			s.With(idem.Middleware).Post("/", partyHandler.CreateSupplier)
			s.Get("/{id}", partyHandler.GetSupplier)
			s.Put("/{id}", partyHandler.UpdateSupplier)
			s.Delete("/{id}", partyHandler.DeleteSupplier)
		})

		v.Route("/sales", func(s chi.Router) {
			s.Get("/", saleHandler.List)
			s.With(salesLimit.Middleware, idem.Middleware).Post("/", saleHandler.Create)
			s.Get("/{id}", saleHandler.Get)
		})

		v.Route("/purchases", func(p chi.Router) {
			p.Get("/", purchaseHandler.List)
			p.With(idem.Middleware).Post("/", purchaseHandler.Create)
			p.Get("/{id}", purchaseHandler.Get)
		})

		v.Route("/expenses", func(e chi.Router) {
			e.Get("/", expenseHandler.List)
			e.With(idem.Middleware).Post("/", expenseHandler.Create)
			e.Get("/{id}", expenseHandler.Get)
			e.Put("/{id}", expenseHandler.Update)
			e.Delete("/{id}", expenseHandler.Delete)
		})

		v.Route("/reports", func(rp chi.Router) {
			rp.Get("/summary", reportHandler.Summary)
			rp.Get("/daily", reportHandler.Daily)
			rp.Get("/top-products", reportHandler.TopProducts)
		})

		v.Route("/pos/sessions", func(ps chi.Router) {
			ps.Post("/", posHandler.Open)
			ps.Route("/{id}", func(s chi.Router) {
				s.Get("/", posHandler.Get)
				s.Delete("/", posHandler.Close)
				s.Post("/items", posHandler.AddItem)
				s.Patch("/items/{productId}", posHandler.UpdateItem)
				s.Delete("/items/{productId}", posHandler.RemoveItem)
				s.Put("/adjustments", posHandler.Adjust)
				s.Post("/clear", posHandler.Clear)
				s.With(salesLimit.Middleware, idem.Middleware).Post("/checkout", posHandler.Checkout)
			})
		})
	})

	// Short paths used by till clients.
	r.Get("/products", catalogHandler.Products)
	r.Get("/products/{id}", catalogHandler.Product)
	r.Get("/customers", partyHandler.ListCustomers)
	r.With(salesLimit.Middleware, idem.Middleware).Post("/sales", saleHandler.Create)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
		return
	case <-ctx.Done():
	}

	health.SetReady(false)
	logger.Info().Dur("grace", cfg.ShutdownGracePeriod).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	logger.Info().Msg("server stopped")
}

func mustInitDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "kasir-api"

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := pool.Ping(connectCtx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	return pool
}

func mustInitRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(common.AtoiDefault(os.Getenv(key), fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
