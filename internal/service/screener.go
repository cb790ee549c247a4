package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"

	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

// ScreenerServiceOptions groups dependencies for ScreenerService.
type ScreenerServiceOptions struct {
	Secret string
	Logger *slog.Logger // Optional
}

// ScreenerService checks submitted screener passwords against the shared secret.
type ScreenerService struct {
	digest     [sha256.Size]byte
	configured bool
	logger     *slog.Logger
}

// NewScreenerService constructs a ScreenerService. An empty secret is allowed and
// makes every check fail.
func NewScreenerService(opts ScreenerServiceOptions) *ScreenerService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenerService{
		digest:     sha256.Sum256([]byte(opts.Secret)),
		configured: opts.Secret != "",
		logger:     logger.With("component", "screener"),
	}
}

// Configured reports whether a secret is set.
func (s *ScreenerService) Configured() bool {
	return s.configured
}

// Authenticate returns nil when password matches the secret byte for byte.
// Every failure, including an unconfigured secret, is the same AuthenticationFailed error.
func (s *ScreenerService) Authenticate(ctx context.Context, password string) error {
	if !s.configured {
		s.logger.WarnContext(ctx, "screener login attempted without a configured secret")
		return apperrors.AuthenticationFailed()
	}
	got := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(got[:], s.digest[:]) != 1 {
		return apperrors.AuthenticationFailed()
	}
	return nil
}
