package utils

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// BackgroundProcessManager owns every long-running goroutine in the bot
// (scheduler ticks, stats refresh, per-channel purge loops) and gives
// them a shared lifecycle: named start, named stop, and a bounded
// shutdown wait.
type BackgroundProcessManager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	processes map[string]*processInfo
	mu        sync.RWMutex
}

type processInfo struct {
	name   string
	cancel context.CancelFunc
}

func NewBackgroundProcessManager() *BackgroundProcessManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &BackgroundProcessManager{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]*processInfo),
	}
}

// StartProcess launches fn in a managed goroutine. Starting a process
// under an existing name cancels and replaces the old one.
func (bpm *BackgroundProcessManager) StartProcess(name string, fn func(ctx context.Context)) {
	bpm.mu.Lock()
	defer bpm.mu.Unlock()

	if _, exists := bpm.processes[name]; exists {
		slog.Warn("Process already exists, stopping existing one",
			slog.String("type", "sys"),
			slog.String("process", name))
		bpm.stopProcessLocked(name)
	}

	processCtx, processCancel := context.WithCancel(bpm.ctx)
	bpm.processes[name] = &processInfo{name: name, cancel: processCancel}

	bpm.wg.Add(1)
	go func() {
		defer bpm.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background process panic",
					slog.String("type", "sys"),
					slog.String("process", name),
					slog.Any("panic", r))
			}
		}()

		slog.Info("Starting background process",
			slog.String("type", "sys"),
			slog.String("process", name))

		fn(processCtx)

		slog.Info("Background process ended",
			slog.String("type", "sys"),
			slog.String("process", name))
	}()
}

// StopProcess cancels a single process by name. Unknown names no-op.
func (bpm *BackgroundProcessManager) StopProcess(name string) {
	bpm.mu.Lock()
	defer bpm.mu.Unlock()
	bpm.stopProcessLocked(name)
}

func (bpm *BackgroundProcessManager) stopProcessLocked(name string) {
	if process, exists := bpm.processes[name]; exists {
		process.cancel()
		delete(bpm.processes, name)
		slog.Info("Stopped background process",
			slog.String("type", "sys"),
			slog.String("process", name))
	}
}

// Running reports whether a process with the given name is registered.
func (bpm *BackgroundProcessManager) Running(name string) bool {
	bpm.mu.RLock()
	defer bpm.mu.RUnlock()
	_, exists := bpm.processes[name]
	return exists
}

// ProcessCount returns the number of active processes.
func (bpm *BackgroundProcessManager) ProcessCount() int {
	bpm.mu.RLock()
	defer bpm.mu.RUnlock()
	return len(bpm.processes)
}

// Shutdown cancels everything and waits up to timeout for goroutines to
// drain.
func (bpm *BackgroundProcessManager) Shutdown(timeout time.Duration) error {
	slog.Info("Shutting down background processes",
		slog.String("type", "sys"),
		slog.Int("process_count", bpm.ProcessCount()))

	bpm.cancel()

	done := make(chan struct{})
	go func() {
		bpm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		slog.Warn("Timeout waiting for background processes to stop",
			slog.String("type", "sys"),
			slog.Duration("timeout", timeout))
		return context.DeadlineExceeded
	}
}

// Context returns the manager-wide context.
func (bpm *BackgroundProcessManager) Context() context.Context {
	return bpm.ctx
}
