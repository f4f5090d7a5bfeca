package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	appconfig "dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client is the broker-facing side of the worker manager: it owns the gRPC
// connection the job workers poll on and starts and deploys processes.
type Client struct {
	zb     zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig bounds the exponential backoff applied to broker commands.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 3,
	BaseDelay:  1 * time.Second,
	MaxDelay:   10 * time.Second,
}

// NewClient connects over plaintext with default timeouts.
func NewClient(address string) (*Client, error) {
	return NewClientWithConfig(&ClientConfig{
		GatewayAddress:         address,
		UsePlaintextConnection: true,
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         30 * time.Second,
	})
}

func ConfigFromApp(cfg appconfig.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: cfg.UsePlaintext,
		ConnectionTimeout:      appconfig.GetDuration(cfg.ConnectionTimeout),
		RequestTimeout:         appconfig.GetDuration(cfg.RequestTimeout),
		RetryConfig:            DefaultRetryConfig,
	}
}

// NewClientWithConfig dials the gateway and fails unless a topology request
// succeeds within ConnectionTimeout.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}

	zb, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         config.GatewayAddress,
		UsePlaintextConnection: config.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{zb: zb, config: config}
	if err := c.HealthCheck(context.Background()); err != nil {
		zb.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", config.GatewayAddress, err)
	}
	return c, nil
}

// GetClient exposes the raw client for job workers.
func (c *Client) GetClient() zbc.Client {
	return c.zb
}

func (c *Client) Close() error {
	return c.zb.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.zb.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// Deploy deploys the BPMN resources at paths in one command.
func (c *Client) Deploy(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no resources to deploy")
	}
	return c.withRetry(ctx, "deploy", func(ctx context.Context) error {
		cmd := c.zb.NewDeployResourceCommand().AddResourceFile(paths[0])
		for _, p := range paths[1:] {
			cmd = cmd.AddResourceFile(p)
		}
		_, err := cmd.Send(ctx)
		return err
	})
}

// StartProcess starts the latest version of processID and returns the
// process instance key.
func (c *Client) StartProcess(ctx context.Context, processID string, variables map[string]interface{}) (int64, error) {
	var key int64
	err := c.withRetry(ctx, "create-instance", func(ctx context.Context) error {
		cmd, err := c.zb.NewCreateInstanceCommand().
			BPMNProcessId(processID).
			LatestVersion().
			VariablesFromMap(variables)
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		res, err := cmd.Send(ctx)
		if err != nil {
			return err
		}
		key = res.GetProcessInstanceKey()
		return nil
	})
	return key, err
}

// withRetry runs fn until it succeeds, fails permanently or the retry budget
// is spent. The returned error is a StandardError.
func (c *Client) withRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	rc := c.config.RetryConfig
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !retryableCode(err) || attempt == rc.MaxRetries {
			return classify(err, operation, attempt)
		}

		delay := rc.BaseDelay << attempt
		if delay > rc.MaxDelay {
			delay = rc.MaxDelay
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("zeebe %s cancelled after %d attempts: %w", operation, attempt+1, ctx.Err())
		}
	}
}

func grpcCode(err error) codes.Code {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	return status.Code(err)
}

func retryableCode(err error) bool {
	switch grpcCode(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}

// classify maps a broker error onto the shared error codes. Rejections the
// broker will repeat on every attempt are not retryable.
func classify(err error, operation string, attempt int) error {
	cause := fmt.Errorf("zeebe %s failed", operation)
	if attempt > 0 {
		cause = fmt.Errorf("zeebe %s failed after %d retries", operation, attempt)
	}
	cause = fmt.Errorf("%w: %v", cause, err)

	switch grpcCode(err) {
	case codes.DeadlineExceeded:
		return errors.NewTimeoutError("zeebe", cause)
	case codes.NotFound, codes.AlreadyExists, codes.InvalidArgument,
		codes.FailedPrecondition, codes.PermissionDenied, codes.Unauthenticated:
		se := errors.NewExternalServiceError("zeebe", cause)
		se.Retryable = false
		return se
	default:
		return errors.NewExternalServiceError("zeebe", cause)
	}
}
