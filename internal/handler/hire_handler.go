package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/org-hierarchy/internal/domain"
	"github.com/org-hierarchy/internal/dto"
	"github.com/org-hierarchy/internal/organization"
	"github.com/org-hierarchy/internal/service"
)

type HireHandler struct {
	hireService service.HireService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewHireHandler(hireService service.HireService, logger *slog.Logger) *HireHandler {
	return &HireHandler{
		hireService: hireService,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (h *HireHandler) Hire(w http.ResponseWriter, r *http.Request) {
	var req dto.HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	position, err := h.hireService.Hire(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, position)
}

func (h *HireHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.hireService.Tree(r.Context()))
}

func (h *HireHandler) GetOutline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.hireService.Outline(r.Context()))); err != nil {
		h.logger.Error("failed to write outline", slog.Any("error", err))
	}
}

func (h *HireHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	title, err := h.extractTitle(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position title", err.Error())
		return
	}

	position, err := h.hireService.Find(r.Context(), title)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, position)
}

func (h *HireHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.hireService.Employees(r.Context()))
}

func (h *HireHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractEmployeeID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	employee, err := h.hireService.Employee(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, employee)
}

func (h *HireHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.hireService.HireCount(r.Context())
	if err != nil {
		h.logger.Error("health check failed", slog.Any("error", err))
		h.respondError(w, http.StatusServiceUnavailable, "database unavailable", "")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Hires: count})
}

func (h *HireHandler) extractEmployeeID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/employees/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(path, 10, 64)
}

func (h *HireHandler) extractTitle(r *http.Request) (string, error) {
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/positions/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "", errors.New("title is required")
	}

	return url.PathUnescape(path)
}

func (h *HireHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPositionNotFound):
		h.respondError(w, http.StatusNotFound, "position not found", hireMessage(err))
	case errors.Is(err, domain.ErrPositionFilled):
		h.respondError(w, http.StatusConflict, "position is already filled", hireMessage(err))
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// hireMessage возвращает текст отказа в найме, если он есть
func hireMessage(err error) string {
	var hireErr *organization.HireError
	if errors.As(err, &hireErr) {
		return hireErr.Error()
	}
	return ""
}

func (h *HireHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *HireHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
