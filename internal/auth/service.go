package auth

import (
	"go.uber.org/zap"

	"trade2cart/internal/config"
)

// Service handles phone sign-in: a challenge is created per request and a
// bearer token is issued once the code is answered. There is no SMS gateway
// here; the code is logged for the delivery channel to pick up.
type Service struct {
	challenges *ChallengeStore
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewService(cfg config.AuthConfig, logger *zap.Logger) *Service {
	return &Service{
		challenges: NewChallengeStore(cfg.ChallengeTTL),
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *Service) RequestCode(phone string) (requestID string, err error) {
	requestID, code, err := s.challenges.Create(phone)
	if err != nil {
		return "", err
	}

	s.logger.Debug("sign-in code generated",
		zap.String("requestId", requestID),
		zap.String("phone", phone),
		zap.String("code", code),
	)

	return requestID, nil
}

func (s *Service) VerifyCode(requestID, code string) (token string, err error) {
	phone, err := s.challenges.Verify(requestID, code)
	if err != nil {
		return "", err
	}

	token, err = IssueToken(phone, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("vendor signed in", zap.String("phone", phone))
	return token, nil
}
