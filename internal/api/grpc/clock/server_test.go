package clock

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/chess-clock/internal/domain/match"
)

var errTestPress = errors.New("test press error")

// fakeService implements the Service interface for unit testing the transport.
type fakeService struct {
	mu sync.Mutex
	// snapshot is returned from Snapshot.
	snapshot Snapshot
	// pressed records every pressed button.
	pressed []match.Button
	// pressErr is returned from Press when set.
	pressErr error
}

// Snapshot returns the configured snapshot.
func (f *fakeService) Snapshot(context.Context) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshot
}

// Press records the button.
func (f *fakeService) Press(_ context.Context, b match.Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pressErr != nil {
		return f.pressErr
	}

	f.pressed = append(f.pressed, b)

	return nil
}

// presses returns a copy of the recorded buttons.
func (f *fakeService) presses() []match.Button {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]match.Button(nil), f.pressed...)
}

// runningSnapshot is a match with A's clock running.
func runningSnapshot() Snapshot {
	s := match.New(600)
	s.Remaining = [2]int{125, 600}
	s.Running = [2]bool{true, false}
	s.Paused = false

	return Snapshot{MatchID: "m-1", State: s}
}

// dialBufconn serves svc on an in-memory listener and returns a connected client.
func dialBufconn(t *testing.T, svc Service) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, NewServer(svc))

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()

		srv.Stop()
	})

	return NewClient(conn)
}

// TestStructRoundtrip keeps the state and adds the readout rows.
func TestStructRoundtrip(t *testing.T) {
	t.Parallel()

	in := runningSnapshot()

	st, err := ToStruct(in)
	require.NoError(t, err)
	require.Equal(t, "A: 02:05", st.GetFields()[FieldDisplayA].GetStringValue())
	require.Equal(t, "B: 10:00", st.GetFields()[FieldDisplayB].GetStringValue())
	require.False(t, st.GetFields()[FieldExpired].GetBoolValue())

	out, err := FromStruct(st)
	require.NoError(t, err)
	require.Equal(t, in, out)

	delete(st.Fields, FieldBudget)

	_, err = FromStruct(st)
	require.ErrorIs(t, err, errMissingField)
}

// TestServer_PressButton_Validation rejects missing and unknown buttons.
func TestServer_PressButton_Validation(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	_, err := s.PressButton(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.PressButton(context.Background(), wrapperspb.String("d"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	svc.pressErr = errTestPress

	_, err = s.PressButton(context.Background(), wrapperspb.String("a"))
	require.Equal(t, codes.Unavailable, status.Code(err))

	svc.pressErr = context.Canceled

	_, err = s.PressButton(context.Background(), wrapperspb.String("a"))
	require.Equal(t, codes.Canceled, status.Code(err))
	require.Empty(t, svc.presses())
}

// TestServer_GetState encodes the service snapshot.
func TestServer_GetState(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{snapshot: runningSnapshot()})

	st, err := s.GetState(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)
	require.InDelta(t, 125, st.GetFields()[FieldRemainingA].GetNumberValue(), 0)
	require.True(t, st.GetFields()[FieldRunningA].GetBoolValue())
	require.Equal(t, "m-1", st.GetFields()[FieldMatchID].GetStringValue())
}

// TestClient_Roundtrip exercises both methods over an in-memory connection.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := &fakeService{snapshot: runningSnapshot()}
	client := dialBufconn(t, svc)
	ctx := context.Background()

	snapshot, err := client.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, runningSnapshot(), snapshot)

	require.NoError(t, client.PressButton(ctx, match.ButtonControl))
	require.NoError(t, client.PressButton(ctx, match.ButtonB))
	require.Equal(t, []match.Button{match.ButtonControl, match.ButtonB}, svc.presses())

	err = client.PressButton(ctx, match.Button(42))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
