package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
)

// Endpoint is the control socket address shared by the TUI and the
// tray companion.
type Endpoint struct {
	Network string
	Address string
}

// ResolveEndpoint returns the per-user control endpoint. On unix it is
// a socket under the temp dir; on windows a loopback TCP port is used
// instead.
func ResolveEndpoint() (Endpoint, error) {
	if runtime.GOOS == "windows" {
		return Endpoint{Network: "tcp", Address: "127.0.0.1:48713"}, nil
	}
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("hdfm-%d", os.Getuid()))
	return Endpoint{Network: "unix", Address: filepath.Join(dir, "ctl.sock")}, nil
}

// Listen opens the control endpoint, replacing any stale socket left
// by a previous run. Unix sockets are restricted to the owning user.
func Listen() (net.Listener, Endpoint, error) {
	ep, err := ResolveEndpoint()
	if err != nil {
		return nil, Endpoint{}, err
	}

	if ep.Network == "unix" {
		dir := filepath.Dir(ep.Address)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, Endpoint{}, fmt.Errorf("create socket dir: %w", err)
		}
		// A crashed process leaves the socket file behind.
		_ = os.Remove(ep.Address)
	}

	listener, err := net.Listen(ep.Network, ep.Address)
	if err != nil {
		return nil, Endpoint{}, fmt.Errorf("listen %s %s: %w", ep.Network, ep.Address, err)
	}

	if ep.Network == "unix" {
		if err := os.Chmod(ep.Address, 0o600); err != nil {
			listener.Close()
			return nil, Endpoint{}, fmt.Errorf("restrict socket: %w", err)
		}
	}

	return listener, ep, nil
}

// Cleanup removes the socket file. It is safe to call whether or not
// the listener is still open.
func Cleanup(ep Endpoint) error {
	if ep.Network != "unix" || ep.Address == "" {
		return nil
	}
	if err := os.Remove(ep.Address); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
