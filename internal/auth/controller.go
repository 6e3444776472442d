package auth

import (
	"encoding/json"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	apperrors "trade2cart/internal/errors"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

type requestCodeRequest struct {
	Phone string `json:"phone"`
}

type requestCodeResponse struct {
	RequestID string `json:"requestId"`
}

func (c *Controller) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if !phonePattern.MatchString(req.Phone) {
		c.writeValidationError(w, "invalid phone number", apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone must be 10 to 15 digits",
		})
		return
	}

	requestID, err := c.service.RequestCode(req.Phone)
	if err != nil {
		c.logger.Error("request code failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, requestCodeResponse{RequestID: requestID})
}

type verifyCodeRequest struct {
	RequestID string `json:"requestId"`
	Code      string `json:"code"`
}

type verifyCodeResponse struct {
	Token string `json:"token"`
}

func (c *Controller) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.RequestID == "" || req.Code == "" {
		c.writeValidationError(w, "missing fields", apperrors.ValidationDetail{
			Field:   "requestId",
			Message: "requestId and code are required",
		})
		return
	}

	token, err := c.service.VerifyCode(req.RequestID, req.Code)
	if err != nil {
		if ue, ok := apperrors.IsUnauthorizedError(err); ok {
			c.writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "UNAUTHORIZED",
				"message": ue.Message,
			})
			return
		}
		c.logger.Error("verify code failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, verifyCodeResponse{Token: token})
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
