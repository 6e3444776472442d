package vendors

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade2cart/internal/auth"
	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Aadhaar  string `json:"aadhaar"`
	PAN      string `json:"pan"`
	License  string `json:"license"`
}

type vendorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// HandleRegister creates a vendor profile in pending status for the
// authenticated phone number.
func (c *Controller) HandleRegister(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "not authenticated",
		})
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateRegisterRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	v := domain.Vendor{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     principal.Phone,
		Location:  req.Location,
		Aadhaar:   req.Aadhaar,
		PAN:       req.PAN,
		License:   req.License,
		Status:    domain.VendorStatusPending,
		CreatedAt: time.Now(),
	}

	if err := c.repo.Insert(r.Context(), v); err != nil {
		if ce, ok := apperrors.IsConflictError(err); ok {
			c.writeJSON(w, http.StatusConflict, map[string]string{
				"error":   "CONFLICT",
				"message": ce.Message,
			})
			return
		}
		c.logger.Error("vendor registration failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.logger.Info("vendor registered",
		zap.String("vendorId", v.ID),
		zap.String("location", v.Location),
	)

	c.writeJSON(w, http.StatusCreated, vendorResponse{
		ID:       v.ID,
		Name:     v.Name,
		Phone:    v.Phone,
		Location: v.Location,
		Status:   v.Status,
	})
}

// HandleProfile returns the authenticated caller's vendor profile.
func (c *Controller) HandleProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "not authenticated",
		})
		return
	}

	v, err := c.repo.FindByPhone(r.Context(), principal.Phone)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": "vendor profile not registered",
			})
			return
		}
		c.logger.Error("loading vendor profile failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, vendorResponse{
		ID:       v.ID,
		Name:     v.Name,
		Phone:    v.Phone,
		Location: v.Location,
		Status:   v.Status,
	})
}

func validateRegisterRequest(req registerRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if req.Location == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "location",
			Message: "location is required",
		})
	}
	if len(req.Aadhaar) != 12 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "aadhaar",
			Message: "aadhaar must be 12 digits",
		})
	}
	if len(req.PAN) != 10 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "pan",
			Message: "pan must be 10 characters",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
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

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
