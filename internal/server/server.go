package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"scribewell-backend/internal/blog"
	"scribewell-backend/internal/chat"
	"scribewell-backend/internal/config"
	"scribewell-backend/internal/db"
	"scribewell-backend/internal/mail"
	"scribewell-backend/internal/store"
	"scribewell-backend/internal/types"
	"scribewell-backend/internal/whatsapp"
)

type Server struct {
	router    *chi.Mux
	cfg       config.Config
	log       *logrus.Logger
	store     *store.MemoryStore
	assistant *chat.Manager
	posts     blog.Repository
	mailer    mail.Sender
	wa        *whatsapp.Builder
	database  *db.DB
}

// Deps lets callers substitute collaborators; any nil field is built
// from config. Tests inject fakes here.
type Deps struct {
	Completer chat.Completer
	Knowledge *chat.Knowledge
	Posts     blog.Repository
	Mailer    mail.Sender
}

func NewServer(cfg config.Config, log *logrus.Logger, deps Deps) (*Server, error) {
	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	knowledge := deps.Knowledge
	if knowledge == nil {
		var err error
		knowledge, err = chat.LoadKnowledge(cfg.KnowledgeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load knowledge base: %w", err)
		}
	}

	completer := deps.Completer
	if completer == nil {
		completer = chat.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.Model)
	}

	wa := whatsapp.NewBuilder(cfg.WhatsAppNumber)
	ms := store.NewMemoryStore()
	manager := chat.NewManager(ms, completer, knowledge, log, chat.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		MaxHistoryTurns: cfg.MaxHistoryTurns,
		ContactLink:     wa.Link(""),
	})

	var database *db.DB
	posts := deps.Posts
	if posts == nil {
		if cfg.MongoURI != "" {
			var err error
			database, err = db.New(cfg.MongoURI, cfg.MongoDatabase)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize document store: %w", err)
			}
			log.Info("mongodb connection established")
			posts = blog.NewMongoRepository(database.Database)
		} else {
			posts = blog.NewMemoryRepository()
		}
	}

	mailer := deps.Mailer
	if mailer == nil {
		mailer = mail.NewRelay(cfg.MailRelayURL, cfg.MailRelayKey, cfg.MailRecipient, log)
	}

	s := &Server{
		router:    r,
		cfg:       cfg,
		log:       log,
		store:     ms,
		assistant: manager,
		posts:     posts,
		mailer:    mailer,
		wa:        wa,
		database:  database,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/quote", s.handleQuote)
	// Scripted widget
	s.router.Post("/api/assistant/scripted", s.handleScripted)
	// LLM-backed assistant
	s.router.Post("/api/assistant/chat", s.handleChat)
	s.router.Post("/api/assistant/language", s.handleLanguage)
	s.router.Get("/api/assistant/session", s.handleGetSession)
	s.router.Delete("/api/assistant/session", s.handleClearSession)
	// Blog
	s.router.Get("/api/posts", s.handleListPosts)
	s.router.Get("/api/posts/{id}", s.handleGetPost)
	s.router.Post("/api/posts", s.requireAdmin(s.handleCreatePost))
	s.router.Put("/api/posts/{id}", s.requireAdmin(s.handleUpdatePost))
	s.router.Delete("/api/posts/{id}", s.requireAdmin(s.handleDeletePost))
	// Contact + misc
	s.router.Post("/api/contact", s.handleContact)
	s.router.Get("/api/whatsapp/link", s.handleWhatsAppLink)
	s.router.Get("/api/promo", s.handleGetPromo)
	s.router.Post("/api/promo", s.handlePromoAction)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.database != nil {
		if err := s.database.HealthCheck(r.Context()); err != nil {
			s.writeError(w, http.StatusServiceUnavailable, "document store unreachable")
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return fmt.Sprintf("s_%d", time.Now().UnixNano())
}

// getSessionID retrieves the session ID from cookie, header, or query
// parameter, in that order.
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID returns the existing session ID or mints a new
// one and sets the cookie.
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		SetSessionCookie(w, sid)
	}
	return sid
}

// requireAdmin guards blog mutations behind the configured bearer
// token. With no token configured, mutations are disabled outright.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			s.writeError(w, http.StatusForbidden, "admin access is not configured")
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.AdminToken {
			s.writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next(w, r)
	}
}
