//go:build unix

package backend

import (
	"os"
	"os/signal"
	"syscall"
)

// watchResize calls fn on every SIGWINCH until the returned stop function
// is called.
func watchResize(fn func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				fn()
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(stopCh)
		<-doneCh
	}
}
