package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	gait "github.com/lucasjlepore/gait-analyzer"
)

// StoppedReason is the Abort reason after a cancel request.
const StoppedReason = "Stopped!"

// Status is the lifecycle state of a Runner.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusAborted Status = "aborted"
)

// ErrBusy is returned by Start while a run is in progress.
var ErrBusy = errors.New("batch already running")

// Runner analyses every file of a directory on one background worker and
// reports through a Mailbox.
type Runner struct {
	mu     sync.RWMutex
	status Status
	runID  string
	// done is closed once the last run's worker and forwarder have exited.
	done chan struct{}

	cancelled atomic.Bool
	mailbox   *Mailbox
	analyze   func(path string) (*gait.RawData, error)
}

// NewRunner returns an idle runner that analyses files with cfg.
func NewRunner(cfg gait.Config, mailbox *Mailbox) *Runner {
	if mailbox == nil {
		mailbox = NewMailbox(nil)
	}
	return &Runner{
		status:  StatusIdle,
		mailbox: mailbox,
		analyze: func(path string) (*gait.RawData, error) {
			return gait.AnalyzeFile(path, cfg)
		},
	}
}

func (r *Runner) Mailbox() *Mailbox { return r.mailbox }

func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// RunID identifies the current or last run.
func (r *Runner) RunID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runID
}

// Start lists dir and launches the worker. The listing happens before
// Start returns; everything else happens on the worker.
func (r *Runner) Start(ctx context.Context, dir string) error {
	files, err := listFiles(dir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.status == StatusRunning {
		r.mu.Unlock()
		return ErrBusy
	}
	r.status = StatusRunning
	r.runID = uuid.NewString()
	r.cancelled.Store(false)
	runID := r.runID
	done := make(chan struct{})
	r.done = done
	r.mu.Unlock()

	log := slog.Default().With("run_id", runID, "dir", dir)
	log.Info("batch started", "files", len(files))

	// One slot lets a progress message wait while the forwarder delivers.
	ch := make(chan Message, 1)
	exited := make(chan struct{})
	go r.work(ctx, log, files, ch, exited)
	go r.forward(log, ch, exited, done)
	return nil
}

// Cancel asks the worker to stop at the next file boundary.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
}

// Wait blocks until the worker and forwarder of the last Start exit.
func (r *Runner) Wait() {
	r.mu.RLock()
	done := r.done
	r.mu.RUnlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) work(ctx context.Context, log *slog.Logger, files []string, out chan<- Message, exited chan<- struct{}) {
	defer close(exited)
	defer close(out)

	results := make([]DataInfo, 0, len(files))
	for i, path := range files {
		if r.cancelled.Load() || ctx.Err() != nil {
			log.Info("batch stopped", "done", i, "files", len(files))
			out <- Message{Kind: Abort, Reason: StoppedReason}
			return
		}

		name := filepath.Base(path)
		select {
		case out <- Message{Kind: Running, Progress: float64(i+1) / float64(len(files)), Label: name}:
		default:
		}

		raw, err := r.analyze(path)
		if err != nil {
			log.Error("batch aborted", "file", name, "err", err)
			out <- Message{Kind: Abort, Reason: abortReason(name, err)}
			return
		}
		info := DataInfo{Path: path, Name: name, Data: raw}
		if rn, err := gait.ParseRecordingName(name); err == nil {
			info.Recording = &rn
		} else {
			log.Warn("recording name not decoded", "file", name, "err", err)
		}
		results = append(results, info)
	}
	log.Info("batch finished", "files", len(results))
	out <- Message{Kind: Done, Results: results}
}

// forward delivers messages in order. The status leaves Running only after
// the terminal message is in the mailbox and the worker has exited, so a
// new Start can never be overtaken by the previous run's last message.
func (r *Runner) forward(log *slog.Logger, in <-chan Message, exited <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	final := StatusAborted
	for msg := range in {
		log.Debug("batch message", "kind", msg.Kind, "progress", msg.Progress, "label", msg.Label)
		r.mailbox.Put(msg)
		if msg.Kind == Done {
			final = StatusDone
		}
	}
	<-exited

	r.mu.Lock()
	r.status = final
	r.mu.Unlock()
}

func abortReason(name string, err error) string {
	var he *gait.HeaderError
	if errors.As(err, &he) {
		return he.Reason
	}
	return fmt.Sprintf("%s: %v", name, err)
}

// listFiles returns the regular files of dir sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
