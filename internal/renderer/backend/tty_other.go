//go:build !unix

package backend

import "errors"

// TTY is unavailable on this platform; use Stdio.
type TTY struct{ Stdio }

// NewTTY always fails on this platform.
func NewTTY(Options) (*TTY, error) {
	return nil, errors.New("controlling tty backend requires a unix platform")
}
