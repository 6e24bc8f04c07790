// Package socketutil implements the listening-socket setup described in
// §6: bind a local stream socket at a configured path, replacing any
// stale socket file left behind by a previous instance, and hold an
// advisory exclusive lock for the process lifetime so at most one
// instance runs per directory.
package socketutil

import (
	"net"
	"os"
	"path/filepath"

	"github.com/yourusername/sockguard/internal/xerrors"
)

// Listen creates the parent directory for path if missing, removes any
// stale socket file at path, and binds a unix-domain listener there.
func Listen(path string) (net.Listener, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, xerrors.Wrap(xerrors.IoError, "socketutil.Listen", "create socket directory "+dir, err)
	}

	if err := removeStaleSocket(path); err != nil {
		return nil, err
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IoError, "socketutil.Listen", "bind "+path, err)
	}
	return l, nil
}

// removeStaleSocket removes a pre-existing socket file at path. A
// previous instance that did not shut down cleanly leaves its bind
// target behind; net.Listen("unix", ...) refuses to reuse it otherwise.
func removeStaleSocket(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return xerrors.Wrap(xerrors.IoError, "socketutil.removeStaleSocket", "stat "+path, err)
	}
	if info.Mode()&os.ModeSocket == 0 {
		return xerrors.New(xerrors.IoError, "socketutil.removeStaleSocket", path+" exists and is not a socket")
	}
	if err := os.Remove(path); err != nil {
		return xerrors.Wrap(xerrors.IoError, "socketutil.removeStaleSocket", "remove stale socket "+path, err)
	}
	return nil
}
