package device

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/hal/virtual"
)

var errTestFind = errors.New("test find error")

// fakeProcess implements ps.Process.
type fakeProcess struct {
	pid  int
	name string
}

// Pid returns the process ID.
func (p fakeProcess) Pid() int { return p.pid }

// PPid returns the parent process ID.
func (p fakeProcess) PPid() int { return 1 }

// Executable returns the executable name.
func (p fakeProcess) Executable() string { return p.name }

// sequentialIDs returns a generator of "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return "id-" + strconv.Itoa(n)
	}
}

// TestService_Observe rotates the match ID only when the match is reset.
func TestService_Observe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newService(virtual.NewPanel(), 60)
	s.newID = sequentialIDs()
	s.matchID = s.newID()

	fresh := match.New(60)

	s.observe(fresh)
	require.Equal(t, "id-1", s.Snapshot(ctx).MatchID)

	running := fresh
	running.Paused = false
	running.Running = [2]bool{false, true}
	running.Remaining = [2]int{60, 59}

	s.observe(running)
	require.Equal(t, "id-1", s.Snapshot(ctx).MatchID)
	require.Equal(t, running, s.Snapshot(ctx).State)

	s.observe(fresh)
	require.Equal(t, "id-2", s.Snapshot(ctx).MatchID)

	s.observe(fresh)
	require.Equal(t, "id-2", s.Snapshot(ctx).MatchID)
}

// TestService_Press latches the button on the panel.
func TestService_Press(t *testing.T) {
	t.Parallel()

	panel := virtual.NewPanel()
	s := newService(panel, 60)

	require.NoError(t, s.Press(context.Background(), match.ButtonB))
	require.Equal(t, match.LevelPressed, panel.ReadButton(match.ButtonB))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Press(ctx, match.ButtonA), context.Canceled)
	require.Equal(t, match.LevelReleased, panel.ReadButton(match.ButtonA))
}

// finderOf returns a process finder over a fixed process table.
func finderOf(processes ...ps.Process) processFinder {
	return func(pid int) (ps.Process, error) {
		for _, p := range processes {
			if p.Pid() == pid {
				return p, nil
			}
		}

		return nil, nil
	}
}

// writeLock stores pid in a fresh lock file and returns its path.
func writeLock(t *testing.T, pid int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chess-clock.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600))

	return path
}

// TestEnsureSingleInstance blocks only on a live simulator named in the lock file.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	simulator := fakeProcess{pid: 12, name: "chess-clock"}
	watcher := fakeProcess{pid: 13, name: "chess-clock"}
	reused := fakeProcess{pid: 14, name: "bash"}
	find := finderOf(simulator, watcher, reused)

	// A status or press invocation of the same binary holds no lock.
	path := filepath.Join(t.TempDir(), "chess-clock.pid")
	lock, err := ensureSingleInstance(path, find, "chess-clock", 10)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "10\n", string(data))

	require.NoError(t, lock.Release())
	require.NoFileExists(t, path)

	// A live simulator holds the lock.
	_, err = ensureSingleInstance(writeLock(t, simulator.pid), find, "chess-clock", 10)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	// Dead and reused PIDs are stale.
	_, err = ensureSingleInstance(writeLock(t, 99), find, "chess-clock", 10)
	require.NoError(t, err)

	_, err = ensureSingleInstance(writeLock(t, reused.pid), find, "chess-clock", 10)
	require.NoError(t, err)

	// A garbled lock is stale too.
	path = writeLock(t, 0)
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0o600))

	_, err = ensureSingleInstance(path, find, "chess-clock", 10)
	require.NoError(t, err)

	_, err = ensureSingleInstance(writeLock(t, simulator.pid), func(int) (ps.Process, error) {
		return nil, errTestFind
	}, "chess-clock", 10)
	require.ErrorIs(t, err, errTestFind)
}

// TestInstanceLock_Release keeps a lock taken over by another simulator.
func TestInstanceLock_Release(t *testing.T) {
	t.Parallel()

	path := writeLock(t, 10)
	lock := &instanceLock{path: path, pid: 11}

	require.NoError(t, lock.Release())
	require.FileExists(t, path)

	require.NoError(t, (&instanceLock{path: path, pid: 10}).Release())
	require.NoFileExists(t, path)

	require.NoError(t, (&instanceLock{path: path, pid: 10}).Release())
}
