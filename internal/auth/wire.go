package auth

import (
	"go.uber.org/zap"

	"trade2cart/internal/config"
)

func NewModule(cfg config.AuthConfig, logger *zap.Logger) *Controller {
	svc := NewService(cfg, logger)
	return NewController(svc, logger)
}
