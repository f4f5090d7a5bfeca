package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func testClient() *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: 2,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

// ==========================
// Retry Tests
// ==========================

func TestWithRetry_RecoversFromUnavailable(t *testing.T) {
	c := testClient()
	attempts := 0

	err := c.withRetry(context.Background(), "topology", func(context.Context) error {
		attempts++
		if attempts == 1 {
			return status.Error(codes.Unavailable, "gateway restarting")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_StopsOnRejection(t *testing.T) {
	c := testClient()
	attempts := 0

	err := c.withRetry(context.Background(), "create-instance", func(context.Context) error {
		attempts++
		return status.Error(codes.NotFound, "no process with id dogmatch-recommendation")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	se, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeExternalService, se.Code)
	assert.False(t, se.Retryable)
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	c := testClient()
	attempts := 0

	err := c.withRetry(context.Background(), "deploy", func(context.Context) error {
		attempts++
		return fmt.Errorf("send: %w", context.DeadlineExceeded)
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	se, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, se.Code)
	assert.Contains(t, se.Details, "after 2 retries")
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	c := testClient()
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.withRetry(ctx, "topology", func(context.Context) error {
		return status.Error(codes.Unavailable, "connection refused")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeploy_RequiresResources(t *testing.T) {
	assert.Error(t, testClient().Deploy(context.Background()))
}

// ==========================
// Error Mapping Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      errors.ErrorCode
		retryable bool
	}{
		{name: "unavailable", err: status.Error(codes.Unavailable, "down"), code: errors.ErrCodeExternalService, retryable: true},
		{name: "grpc deadline", err: status.Error(codes.DeadlineExceeded, "slow"), code: errors.ErrCodeTimeout, retryable: true},
		{name: "context deadline", err: context.DeadlineExceeded, code: errors.ErrCodeTimeout, retryable: true},
		{name: "not found", err: status.Error(codes.NotFound, "job"), code: errors.ErrCodeExternalService},
		{name: "invalid argument", err: status.Error(codes.InvalidArgument, "vars"), code: errors.ErrCodeExternalService},
		{name: "permission denied", err: status.Error(codes.PermissionDenied, "no"), code: errors.ErrCodeExternalService},
		{name: "plain error", err: stderrors.New("something odd"), code: errors.ErrCodeExternalService, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se, ok := errors.AsStandardError(classify(tt.err, "op", 0))
			require.True(t, ok)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.retryable, se.Retryable)
		})
	}
}

func TestRetryableCode(t *testing.T) {
	assert.True(t, retryableCode(status.Error(codes.ResourceExhausted, "backpressure")))
	assert.True(t, retryableCode(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.False(t, retryableCode(status.Error(codes.InvalidArgument, "bad")))
	assert.False(t, retryableCode(stderrors.New("invalid argument")))
}

func TestConfigFromApp(t *testing.T) {
	cc := ConfigFromApp(config.CamundaConfig{
		BrokerAddress:     "zeebe:26500",
		UsePlaintext:      true,
		ConnectionTimeout: 2000,
		RequestTimeout:    5000,
	})
	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 2*time.Second, cc.ConnectionTimeout)
	assert.Equal(t, 5*time.Second, cc.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}
