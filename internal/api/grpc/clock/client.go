package clock

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/chess-clock/internal/domain/match"
)

// Client calls the ChessClockService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a client bound to cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// GetState fetches and decodes the live match snapshot.
func (c *Client) GetState(ctx context.Context, opts ...grpc.CallOption) (Snapshot, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetStateMethod, new(emptypb.Empty), out, opts...); err != nil {
		return Snapshot{}, err
	}

	snapshot, err := FromStruct(out)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode state: %w", err)
	}

	return snapshot, nil
}

// PressButton presses button on the remote device.
func (c *Client) PressButton(ctx context.Context, button match.Button, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, PressButtonMethod, wrapperspb.String(button.String()), new(emptypb.Empty), opts...)
}
