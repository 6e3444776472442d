package billing

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	"trade2cart/internal/vendors"
)

type ProcessWorkflow interface {
	VerifyOTP(ctx context.Context, v *domain.Vendor, orderID, code string) (*Session, error)
	AddLine(ctx context.Context, vendorID, sessionID, materialName string, quantity float64) (SessionView, error)
	RemoveLine(ctx context.Context, vendorID, sessionID string, index int) (SessionView, error)
	SetQuantity(ctx context.Context, vendorID, sessionID string, index int, quantity float64) (SessionView, error)
	View(ctx context.Context, vendorID, sessionID string) (SessionView, error)
	Finalize(ctx context.Context, vendorID, sessionID string) (SessionView, error)
	Edit(ctx context.Context, vendorID, sessionID string) (SessionView, error)
	Cancel(ctx context.Context, vendorID, sessionID string) error
	Commit(ctx context.Context, vendorID, sessionID string) (*CommitResult, error)
	ListBills(ctx context.Context, vendorID string) ([]domain.Bill, error)
}

type Controller struct {
	workflow ProcessWorkflow
	logger   *zap.Logger
}

func NewController(workflow ProcessWorkflow, logger *zap.Logger) *Controller {
	return &Controller{
		workflow: workflow,
		logger:   logger,
	}
}

type verifyRequest struct {
	Code string `json:"code"`
}

type sessionResponse struct {
	SessionID   string        `json:"sessionId"`
	OrderID     string        `json:"orderId"`
	State       string        `json:"state"`
	Customer    string        `json:"customer"`
	Mobile      string        `json:"mobile"`
	Lines       []lineItemDTO `json:"lines"`
	Total       float64       `json:"total"`
	FrozenTotal *float64      `json:"frozenTotal,omitempty"`
}

type lineItemDTO struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

func (c *Controller) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	orderID := chi.URLParam(r, "orderID")

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if len(req.Code) != 4 {
		c.writeValidationError(w, "invalid code", apperrors.ValidationDetail{
			Field:   "code",
			Message: "code must be 4 digits",
		})
		return
	}

	sess, err := c.workflow.VerifyOTP(r.Context(), v, orderID, req.Code)
	if err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, c.toSessionResponse(sess.View()))
}

func (c *Controller) HandleView(w http.ResponseWriter, r *http.Request) {
	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.View(ctx, vendorID, sessionID)
	})
}

type addLineRequest struct {
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
}

func (c *Controller) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.AddLine(ctx, vendorID, sessionID, req.Material, req.Quantity)
	})
}

type setQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

func (c *Controller) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	index, err := c.lineIndex(r)
	if err != nil {
		c.writeValidationError(w, "invalid line index", apperrors.ValidationDetail{
			Field:   "index",
			Message: "index must be a non-negative integer",
		})
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.SetQuantity(ctx, vendorID, sessionID, index, req.Quantity)
	})
}

func (c *Controller) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	index, err := c.lineIndex(r)
	if err != nil {
		c.writeValidationError(w, "invalid line index", apperrors.ValidationDetail{
			Field:   "index",
			Message: "index must be a non-negative integer",
		})
		return
	}

	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.RemoveLine(ctx, vendorID, sessionID, index)
	})
}

func (c *Controller) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.Finalize(ctx, vendorID, sessionID)
	})
}

func (c *Controller) HandleEdit(w http.ResponseWriter, r *http.Request) {
	c.sessionOp(w, r, func(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
		return c.workflow.Edit(ctx, vendorID, sessionID)
	})
}

func (c *Controller) HandleCancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := c.workflow.Cancel(r.Context(), v.ID, sessionID); err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type commitResponse struct {
	BillID    string  `json:"billId"`
	OrderID   string  `json:"orderId"`
	TotalBill float64 `json:"totalBill"`
}

func (c *Controller) HandleCommit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	result, err := c.workflow.Commit(r.Context(), v.ID, sessionID)
	if err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, commitResponse{
		BillID:    result.BillID,
		OrderID:   result.OrderID,
		TotalBill: roundMoney(result.TotalBill),
	})
}

type billDTO struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Mobile    string    `json:"mobile"`
	TotalBill float64   `json:"totalBill"`
	CreatedAt time.Time `json:"createdAt"`
}

type billsResponse struct {
	Bills []billDTO `json:"bills"`
}

func (c *Controller) HandleListBills(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	bills, err := c.workflow.ListBills(r.Context(), v.ID)
	if err != nil {
		c.handleAppError(w, err, logger)
		return
	}

	dtos := make([]billDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, billDTO{
			ID:        b.ID,
			OrderID:   b.OrderID,
			Mobile:    b.Mobile,
			TotalBill: roundMoney(b.TotalBill),
			CreatedAt: b.CreatedAt,
		})
	}
	c.writeJSON(w, http.StatusOK, billsResponse{Bills: dtos})
}

func (c *Controller) sessionOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, vendorID, sessionID string) (SessionView, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", "vendor profile required")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	view, err := op(r.Context(), v.ID, sessionID)
	if err != nil {
		c.handleWorkflowError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, c.toSessionResponse(view))
}

func (c *Controller) lineIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

func (c *Controller) toSessionResponse(view SessionView) sessionResponse {
	lines := make([]lineItemDTO, 0, len(view.Lines))
	for _, li := range view.Lines {
		lines = append(lines, lineItemDTO{
			Position: li.Position,
			Name:     li.Name,
			Unit:     li.Unit,
			Rate:     roundMoney(li.Rate),
			Quantity: li.Quantity,
			Total:    roundMoney(li.Total()),
		})
	}

	resp := sessionResponse{
		SessionID: view.ID,
		OrderID:   view.OrderID,
		State:     string(view.State),
		Customer:  view.Customer,
		Mobile:    view.Mobile,
		Lines:     lines,
		Total:     roundMoney(view.Total),
	}
	if view.FrozenTotal != nil {
		frozen := roundMoney(*view.FrozenTotal)
		resp.FrozenTotal = &frozen
	}
	return resp
}

func (c *Controller) handleWorkflowError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, ErrMaterialNotFound):
		c.writeValidationError(w, "material not found", apperrors.ValidationDetail{
			Field:   "material",
			Message: "material is not available at your location",
		})
	case errors.Is(err, ErrInvalidQuantity):
		c.writeValidationError(w, "invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	case errors.Is(err, ErrIndexOutOfRange):
		c.writeValidationError(w, "invalid line index", apperrors.ValidationDetail{
			Field:   "index",
			Message: "no line at that index",
		})
	case errors.Is(err, ErrEmptyBill):
		c.writeValidationError(w, "empty bill", apperrors.ValidationDetail{
			Field:   "lines",
			Message: "add at least one line before finalizing",
		})
	case errors.Is(err, ErrInvalidState):
		c.writeError(w, http.StatusConflict, "INVALID_STATE", "operation not allowed in current workflow state")
	default:
		c.handleAppError(w, err, logger)
	}
}

func (c *Controller) handleAppError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nf.Message)
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "ALREADY_COMPLETED", ce.Message)
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", fe.Message)
		return
	}
	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeError(w, http.StatusUnauthorized, "INVALID_OTP", ue.Message)
		return
	}
	if _, ok := apperrors.IsUnavailableError(err); ok {
		c.writeError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE",
			"the store is temporarily unavailable; your bill is intact, please retry")
		return
	}
	if _, ok := apperrors.IsPartialCommitError(err); ok {
		logger.Error("partial commit", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "PARTIAL_COMMIT",
			"the commit may be partially applied; do not retry and contact support")
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
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
