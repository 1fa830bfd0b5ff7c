package clock

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/chess-clock/internal/domain/match"
)

// Service abstracts the device operations the transport layer depends on.
type Service interface {
	Snapshot(ctx context.Context) Snapshot
	Press(ctx context.Context, button match.Button) error
}

// Server implements the ChessClockService gRPC API.
type Server struct {
	// service owns the running match.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetState returns the latest match snapshot.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	response, err := ToStruct(s.service.Snapshot(ctx))
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode state")
	}

	return response, nil
}

// PressButton presses one of the a, b or control buttons.
func (s *Server) PressButton(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	button, err := match.ParseButton(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = s.service.Press(ctx, button); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}

		return nil, status.Error(codes.Unavailable, "unable to press button")
	}

	return new(emptypb.Empty), nil
}
