package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

func TestScreenerService_Authenticate(t *testing.T) {
	t.Parallel()
	svc := NewScreenerService(ScreenerServiceOptions{Secret: "visor"})
	ctx := context.Background()

	assert.True(t, svc.Configured())
	assert.NoError(t, svc.Authenticate(ctx, "visor"))

	for _, wrong := range []string{"", "Visor", "visor ", "viso", "visorr"} {
		err := svc.Authenticate(ctx, wrong)
		assert.True(t, apperrors.IsAuthenticationFailed(err), "password %q", wrong)
	}
}

func TestScreenerService_UnconfiguredFailsClosed(t *testing.T) {
	t.Parallel()
	svc := NewScreenerService(ScreenerServiceOptions{})

	assert.False(t, svc.Configured())
	for _, pw := range []string{"", "anything"} {
		err := svc.Authenticate(context.Background(), pw)
		assert.True(t, apperrors.IsAuthenticationFailed(err))
		assert.Equal(t, "invalid access key", err.Error())
	}
}
