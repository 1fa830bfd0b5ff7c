// Package clock implements the gRPC transport of the chess clock simulator.
//
// The service is described by a hand-written grpc.ServiceDesc over protobuf
// well-known types, so no generated code is needed:
//
//	chessclock.v1.ChessClockService/GetState    (google.protobuf.Empty) -> google.protobuf.Struct
//	chessclock.v1.ChessClockService/PressButton (google.protobuf.StringValue) -> google.protobuf.Empty
//
// The Struct carries the fields listed in the Field* constants.
package clock
