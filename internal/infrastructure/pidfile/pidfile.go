// Package pidfile enforces a single bay daemon per campaign database. Two
// concurrent tick loops would double-advance arrivals and work sessions,
// so the daemon refuses to start while a live instance holds the lock.
package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile is the on-disk lock for the daemon process.
type PIDFile struct {
	path string
}

// New returns a lock manager for the given path. Nothing touches the disk
// until Acquire.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire takes the lock, clearing a stale file left by a crashed daemon.
// Returns an error when a live daemon already holds it.
func (p *PIDFile) Acquire() error {
	if pid, live := p.holder(); live {
		return fmt.Errorf("bay daemon already running with PID %d (lock %s)", pid, p.path)
	}

	contents := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing daemon lock %s: %w", p.path, err)
	}
	return nil
}

// Release drops the lock. Missing files are fine; the daemon may have been
// cleaned up externally.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing daemon lock %s: %w", p.path, err)
	}
	return nil
}

// holder reports the PID recorded in the lock file and whether that
// process is still alive. Unreadable or stale files are removed so a
// crashed daemon never blocks the next start.
func (p *PIDFile) holder() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || !processAlive(pid) {
		_ = os.Remove(p.path)
		return 0, false
	}
	return pid, true
}

// processAlive probes a PID with signal 0: delivery is never attempted,
// only the existence and permission checks run.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on Unix; the signal probe is the real test.
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means the process exists under another user.
	return err == syscall.EPERM
}
