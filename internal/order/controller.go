package order

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	"trade2cart/internal/vendors"
)

type Controller struct {
	usecase *ListUseCase
	logger  *zap.Logger
}

func NewController(usecase *ListUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  logger,
	}
}

type orderDTO struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customerId"`
	Mobile      string     `json:"mobile"`
	Status      string     `json:"status"`
	TotalAmount *float64   `json:"totalAmount,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type listResponse struct {
	Orders []orderDTO `json:"orders"`
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	status := r.URL.Query().Get("status")
	orders, err := c.usecase.List(r.Context(), v.ID, status)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	dtos := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	c.writeJSON(w, http.StatusOK, listResponse{Orders: dtos})
}

type summaryResponse struct {
	PendingCount   int     `json:"pendingCount"`
	CompletedToday int     `json:"completedToday"`
	EarningsToday  float64 `json:"earningsToday"`
}

func (c *Controller) HandleSummary(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	summary, err := c.usecase.Summary(r.Context(), v.ID)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, summaryResponse{
		PendingCount:   summary.PendingCount,
		CompletedToday: summary.CompletedToday,
		EarningsToday:  roundMoney(summary.EarningsToday),
	})
}

func toOrderDTO(o domain.Order) orderDTO {
	dto := orderDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Mobile:      o.Mobile,
		Status:      o.Status,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
	}
	if o.TotalAmount != nil {
		rounded := roundMoney(*o.TotalAmount)
		dto.TotalAmount = &rounded
	}
	return dto
}

func (c *Controller) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nf.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c *Controller) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
