package clock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "chessclock.v1.ChessClockService"

	// GetStateMethod is the full method name of GetState.
	GetStateMethod = "/" + ServiceName + "/GetState"
	// PressButtonMethod is the full method name of PressButton.
	PressButtonMethod = "/" + ServiceName + "/PressButton"
)

// ChessClockServer is the server API of the chess clock service.
type ChessClockServer interface {
	// GetState returns the live match snapshot.
	GetState(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// PressButton presses the named virtual button.
	PressButton(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// ServiceDesc describes the chess clock service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // grpc keeps a pointer to the descriptor.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChessClockServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetState",
			Handler:    getStateHandler,
		},
		{
			MethodName: "PressButton",
			Handler:    pressButtonHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chessclock/v1/chess_clock.proto",
}

// Register attaches srv to the registrar.
func Register(registrar grpc.ServiceRegistrar, srv ChessClockServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

func getStateHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ChessClockServer).GetState(ctx, in) //nolint:forcetypeassert // Checked by RegisterService.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetStateMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChessClockServer).GetState(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

func pressButtonHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ChessClockServer).PressButton(ctx, in) //nolint:forcetypeassert // Checked by RegisterService.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PressButtonMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		//nolint:forcetypeassert // Same as above.
		return srv.(ChessClockServer).PressButton(ctx, req.(*wrapperspb.StringValue))
	}

	return interceptor(ctx, in, info, handler)
}
