package ptyrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/schovi/mdsh/internal/decode"
)

func runPipe(ctx context.Context, cmd *exec.Cmd, cfg Config, onChunk ChunkFunc) (*Result, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}
	defer pr.Close()

	cmd.Stdin = cfg.Stdin
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("start command: %w", err)
	}
	// The child holds its own copy; closing ours makes EOF arrive on exit.
	pw.Close()

	done := make(chan struct{})
	pumped := make(chan struct{})
	var out bytes.Buffer
	var pumpErr error

	var wg conc.WaitGroup
	wg.Go(func() { watch(ctx, cmd.Process.Pid, done) })
	wg.Go(func() {
		defer close(pumped)
		pumpErr = pump(pr, &out, nil, onChunk)
	})

	waitErr := cmd.Wait()
	// Background children may keep the write end open after the shell exits.
	pr.SetReadDeadline(time.Now().Add(drainTimeout)) //nolint:errcheck
	<-pumped
	close(done)
	wg.Wait()

	code, err := exitCode(waitErr)
	res := &Result{ExitCode: code, Output: out.Bytes()}
	if err != nil {
		return res, err
	}
	return res, pumpErr
}

func runCapture(ctx context.Context, cmd *exec.Cmd, cfg Config, onChunk ChunkFunc) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdin = cfg.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}

	done := make(chan struct{})
	var wg conc.WaitGroup
	wg.Go(func() { watch(ctx, cmd.Process.Pid, done) })

	waitErr := cmd.Wait()
	close(done)
	wg.Wait()

	code, err := exitCode(waitErr)
	res := &Result{ExitCode: code, Output: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return res, err
	}
	if stdout.Len() > 0 {
		if err := onChunk(decode.Bytes(stdout.Bytes())); err != nil {
			return res, err
		}
	}
	return res, nil
}

// pump copies r into raw and hands decoded chunks to onChunk until EOF. A
// read timeout or EIO (the pty slave side closed) also ends the stream.
// filter, when set, sees each chunk before it is decoded.
func pump(r io.Reader, raw *bytes.Buffer, filter func([]byte) []byte, onChunk ChunkFunc) error {
	dec := decode.NewDecoder()
	buf := make([]byte, ReadBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			raw.Write(buf[:n])
			data := buf[:n]
			if filter != nil {
				data = filter(data)
			}
			if text := dec.Write(data); text != "" {
				if cerr := onChunk(text); cerr != nil {
					return cerr
				}
			}
		}
		if err != nil {
			if !endOfStream(err) {
				log.Printf("read: %v", err)
			}
			break
		}
	}
	if text := dec.Flush(); text != "" {
		return onChunk(text)
	}
	return nil
}

func endOfStream(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
