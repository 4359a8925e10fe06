package ptyrun

import (
	"context"
	"time"

	"golang.org/x/sys/unix"
)

// watch terminates the process group of pid once ctx is done, unless done
// is closed first because the command exited.
func watch(ctx context.Context, pid int, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	log.Printf("terminating process group %d: %v", pid, ctx.Err())
	signalGroup(pid, unix.SIGTERM)

	timer := time.NewTimer(KillGracePeriod)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		log.Printf("process group %d ignored SIGTERM, killing", pid)
		signalGroup(pid, unix.SIGKILL)
	}
}

func signalGroup(pid int, sig unix.Signal) {
	if err := unix.Kill(-pid, sig); err != nil {
		// Not a group leader; fall back to the process itself.
		unix.Kill(pid, sig) //nolint:errcheck
	}
}
