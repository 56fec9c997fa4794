package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/uroom/uroom-server/internal/config"
	"github.com/uroom/uroom-server/internal/database"
	"github.com/uroom/uroom-server/internal/server"
	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
)

// UroomApp is the HTTP surface over the application store. Pages read
// store state and trigger mutations through these endpoints; a session
// cookie carries the identity of the store's current user between
// requests.
type UroomApp struct {
	log            *log.Logger
	store          *store.AppStore
	db             database.SessionRepository
	cs             *server.ChatServer
	stats          stats.StatsProvider
	mux            *http.Server
	signingKey     []byte
	allowedOrigins []string
}

func NewUroomApp(mux *http.ServeMux, logger *log.Logger, cs *server.ChatServer, st *store.AppStore, db database.SessionRepository, sp stats.StatsProvider, cfg *config.Config) *UroomApp {
	s := &UroomApp{
		log:            logger,
		store:          st,
		db:             db,
		cs:             cs,
		stats:          sp,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.HandleFunc("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.HandleFunc("POST /api/onboarding", s.authMiddleware(s.completeOnboarding))
	mux.HandleFunc("GET /api/templates", s.getTemplates)
	mux.HandleFunc("GET /api/rooms", s.authMiddleware(s.onboardedMiddleware(s.listRooms)))
	mux.HandleFunc("POST /api/rooms", s.authMiddleware(s.onboardedMiddleware(s.createRoom)))
	mux.HandleFunc("GET /api/rooms/{id}", s.authMiddleware(s.onboardedMiddleware(s.getRoom)))
	mux.HandleFunc("GET /api/rooms/{id}/members", s.authMiddleware(s.onboardedMiddleware(s.getRoomMembers)))
	mux.HandleFunc("POST /api/rooms/{id}/join", s.authMiddleware(s.onboardedMiddleware(s.joinRoom)))
	mux.HandleFunc("POST /api/rooms/{id}/leave", s.authMiddleware(s.onboardedMiddleware(s.leaveRoom)))
	mux.HandleFunc("GET /api/rooms/{id}/messages", s.authMiddleware(s.onboardedMiddleware(s.getRoomMessages)))
	mux.HandleFunc("POST /api/rooms/{id}/messages", s.authMiddleware(s.onboardedMiddleware(s.sendMessage)))
	mux.HandleFunc("GET /api/rooms/{id}/outputs", s.authMiddleware(s.onboardedMiddleware(s.getRoomOutputs)))
	mux.HandleFunc("POST /api/rooms/{id}/outputs", s.authMiddleware(s.onboardedMiddleware(s.addOutput)))
	mux.HandleFunc("GET /api/users/{id}/rooms", s.authMiddleware(s.onboardedMiddleware(s.getUserRooms)))
	mux.HandleFunc("GET /api/users/{id}/outputs", s.authMiddleware(s.onboardedMiddleware(s.getUserOutputs)))
	mux.HandleFunc("GET /ws", s.authMiddleware(s.serveWs))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *UroomApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			s.log.Println("health check:", err)
			errResp := NewInternalServerError(err)
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *UroomApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *UroomApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
