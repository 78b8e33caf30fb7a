package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-hierarchy/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	hireHandler *HireHandler
}

// NewRouter создаёт новый роутер
func NewRouter(hireHandler *HireHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		hireHandler: hireHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/organization", r.only(http.MethodGet, r.hireHandler.GetOrganization))
	r.mux.HandleFunc("/organization/outline", r.only(http.MethodGet, r.hireHandler.GetOutline))
	r.mux.HandleFunc("/positions/", r.only(http.MethodGet, r.hireHandler.GetPosition))
	r.mux.HandleFunc("/hires", r.only(http.MethodPost, r.hireHandler.Hire))
	r.mux.HandleFunc("/employees", r.only(http.MethodGet, r.hireHandler.ListEmployees))
	r.mux.HandleFunc("/employees/", r.only(http.MethodGet, r.hireHandler.GetEmployee))

	// Health check
	r.mux.HandleFunc("/health", r.only(http.MethodGet, r.hireHandler.Health))

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// only пропускает запросы только с указанным методом
func (r *Router) only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		next(w, req)
	}
}
