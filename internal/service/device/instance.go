package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/chess-clock/internal/config"
)

// ErrAlreadyRunning indicates another simulator owns the panel.
var ErrAlreadyRunning = errors.New("another chess clock simulator is running")

// processFinder looks a process up by PID; a nil process means it is gone.
type processFinder func(pid int) (ps.Process, error)

// instanceLock is the PID file of the running simulator. Only simulators
// write it, so press and status invocations of the same binary never count.
type instanceLock struct {
	// path of the PID file.
	path string
	// pid written to the file.
	pid int
}

// defaultLockPath returns the per-user PID file in the temp directory.
func defaultLockPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("chess-clock-%d.pid", os.Getuid()))
}

// ensureSingleInstance claims the PID file at path for self. It fails when
// the file names a live process running the same executable; a stale file
// (dead PID, or a PID reused by another program) is taken over.
func ensureSingleInstance(path string, find processFinder, executable string, self int) (*instanceLock, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err = checkHolder(string(data), find, executable, self); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		// Nobody holds the panel.
	default:
		return nil, fmt.Errorf("read instance lock: %w", err)
	}

	if err = os.WriteFile(path, []byte(strconv.Itoa(self)+"\n"), config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write instance lock: %w", err)
	}

	return &instanceLock{path: path, pid: self}, nil
}

// checkHolder fails when contents names another live simulator.
func checkHolder(contents string, find processFinder, executable string, self int) error {
	pid, err := strconv.Atoi(strings.TrimSpace(contents))
	if err != nil || pid == self {
		return nil //nolint:nilerr // A garbled lock is stale.
	}

	process, err := find(pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}

	if process == nil || process.Executable() != executable {
		return nil
	}

	return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, pid)
}

// Release removes the PID file if it still names this process.
func (l *instanceLock) Release() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read instance lock: %w", err)
	}

	if strings.TrimSpace(string(data)) != strconv.Itoa(l.pid) {
		return nil
	}

	if err = os.Remove(l.path); err != nil {
		return fmt.Errorf("remove instance lock: %w", err)
	}

	return nil
}

// currentExecutable returns the base name of the running binary.
func currentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}
