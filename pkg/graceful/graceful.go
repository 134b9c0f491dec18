package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Stop blocks until SIGINT or SIGTERM arrives, then calls fn with a context
// that expires after timeout.
func Stop(timeout time.Duration, fn func(ctx context.Context) error) error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)
	return stopOn(done, timeout, fn)
}

func stopOn(done <-chan os.Signal, timeout time.Duration, fn func(ctx context.Context) error) error {
	<-done
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx)
}
