package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/chess-clock/internal/api/grpc/clock"
	"github.com/oshokin/chess-clock/internal/config"
	"github.com/oshokin/chess-clock/internal/domain/match"
)

// Client wraps the ChessClockService client with call timeouts.
type Client struct {
	// conn is the underlying gRPC connection to the simulator.
	conn *grpc.ClientConn
	// api is the ChessClockService client.
	api *api.Client

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// errAddressRequired is returned when no simulator address is configured.
var errAddressRequired = errors.New("address must be provided")

// Dial connects to the simulator API at address. Connections are insecure:
// the simulator is meant for a local machine or a trusted network.
func Dial(address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(dialTarget(address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial chess clock: %w", err)
	}

	return newClient(conn, opts...), nil
}

// newClient wraps an existing connection.
func newClient(conn *grpc.ClientConn, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		api:         api.NewClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetState retrieves the live match snapshot.
func (c *Client) GetState(ctx context.Context) (api.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	snapshot, err := c.api.GetState(callCtx)
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("get state: %w", err)
	}

	return snapshot, nil
}

// Press presses button on the simulator.
func (c *Client) Press(ctx context.Context, button match.Button) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.api.PressButton(callCtx, button); err != nil {
		return fmt.Errorf("press %s: %w", button, err)
	}

	return nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

// dialTarget turns a listen address such as ":50051" into a dialable one.
func dialTarget(address string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil || (host != "" && host != "0.0.0.0" && host != "::") {
		return address
	}

	return net.JoinHostPort("localhost", port)
}
