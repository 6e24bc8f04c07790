package socketutil

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/yourusername/sockguard/internal/xerrors"
)

// Singleton holds an advisory exclusive lock on a companion "lock" file
// next to the listening socket, for the lifetime of the process (§6,
// §9's "Startup singleton" note). Release is OS-automatic on process
// death even if Release is never called.
type Singleton struct {
	file *os.File
}

// AcquireSingleton opens (creating if needed) a "lock" file in the same
// directory as socketPath and takes a non-blocking exclusive flock on
// it. It fails immediately if another instance already holds the lock.
func AcquireSingleton(socketPath string) (*Singleton, error) {
	lockPath := filepath.Join(filepath.Dir(socketPath), "lock")

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IoError, "socketutil.AcquireSingleton", "open lock file "+lockPath, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, xerrors.Wrap(xerrors.IoError, "socketutil.AcquireSingleton", "another instance already holds "+lockPath, err)
	}

	return &Singleton{file: f}, nil
}

// Release drops the lock and closes the underlying file descriptor.
// Calling it is optional: the kernel releases the lock automatically
// when the process exits or the descriptor is otherwise closed.
func (s *Singleton) Release() error {
	if err := unix.Flock(int(s.file.Fd()), unix.LOCK_UN); err != nil {
		s.file.Close()
		return xerrors.Wrap(xerrors.IoError, "socketutil.Release", "unlock failed", err)
	}
	return s.file.Close()
}
