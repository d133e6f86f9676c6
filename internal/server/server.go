package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/config"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/db"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/handlers"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/mq"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/storage"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
	logger     zerolog.Logger
}

// New constructs a Server with its full dependency graph: database,
// repositories, services, optional object storage and message broker.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	objStore, err := newObjectStorage(ctx, cfg, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	broker, err := newBroker(ctx, cfg, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	guideRepo := store.NewGuideRepository(dbConn)
	postRepo := store.NewPostRepository(dbConn)
	commentRepo := store.NewCommentRepository(dbConn)
	contactRepo := store.NewContactRepository(dbConn)
	searchRepo := store.NewSearchRepository(dbConn)

	userService := services.NewUserService(userRepo)
	guideService := services.NewGuideService(guideRepo)
	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo, guideRepo, postRepo)
	contactService := services.NewContactService(contactRepo, broker, cfg.MQ.ContactTopic, logger)
	searchService := services.NewSearchService(searchRepo)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, jwtSecret)
	})
	router.Route("/guides", func(r chi.Router) {
		handlers.GuideRouter(r, guideService, userService, jwtSecret)
	})
	router.Route("/posts", func(r chi.Router) {
		handlers.PostRouter(r, postService, userService, objStore, jwtSecret)
	})
	router.Route("/comments", func(r chi.Router) {
		handlers.CommentRouter(r, commentService, userService, jwtSecret)
	})
	router.Route("/contact", func(r chi.Router) {
		handlers.ContactRouter(r, contactService, userService, jwtSecret)
	})
	router.Route("/search", func(r chi.Router) {
		handlers.SearchRouter(r, searchService)
	})
	router.Route("/quiz", func(r chi.Router) {
		handlers.QuizRouter(r, userService, jwtSecret)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		broker:     broker,
		logger:     logger,
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		client, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		objStore := storage.NewStorage(client)
		if err := objStore.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket: %w", err)
		}
		return objStore, nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, fmt.Errorf("gcs: %w", err)
		}
		objStore := storage.NewStorage(client)
		if err := objStore.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("gcs bucket: %w", err)
		}
		return objStore, nil
	case "", "none":
		logger.Warn().Msg("no object storage configured, cover uploads disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newBroker(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*mq.MQ, error) {
	switch cfg.MQ.Backend {
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		return mq.New(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, fmt.Errorf("pubsub: %w", err)
		}
		return mq.New(client), nil
	case "", "none":
		logger.Warn().Msg("no message broker configured, contact events disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
