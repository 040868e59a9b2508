package compilecmd

import (
	"context"
	"errors"
	"sync"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/compiler"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const compileOperation = "content.compile"

// ErrCompilerRequired indicates a handler built without a compiler.
var ErrCompilerRequired = errors.New("compile command: compiler service is required")

var _ command.Commander[CompileContentCommand] = (*Handler)(nil)

// Handler runs compiles one at a time and keeps the last report.
type Handler struct {
	inner   *commands.Handler[CompileContentCommand]
	service compiler.Service
	logger  interfaces.Logger

	mu   sync.Mutex
	last *compiler.Report
}

// NewHandler binds a handler to the compiler service.
func NewHandler(service compiler.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CompileContentCommand]) (*Handler, error) {
	if service == nil {
		return nil, ErrCompilerRequired
	}
	h := &Handler{service: service, logger: logging.Ensure(logger)}

	handlerOpts := []commands.HandlerOption[CompileContentCommand]{
		commands.WithLogger[CompileContentCommand](h.logger),
		commands.WithOperation[CompileContentCommand](compileOperation),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(h.compile, handlerOpts...)
	return h, nil
}

// Execute implements command.Commander.
func (h *Handler) Execute(ctx context.Context, msg CompileContentCommand) error {
	_, err := h.Run(ctx, msg)
	return err
}

// Run compiles and returns the report of this run. A report is returned
// alongside a compile error when the compiler got far enough to produce one.
func (h *Handler) Run(ctx context.Context, msg CompileContentCommand) (*compiler.Report, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = nil
	err := h.inner.Execute(ctx, msg)
	return h.last, err
}

// Last returns the report of the most recent run.
func (h *Handler) Last() *compiler.Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Handler) compile(ctx context.Context, msg CompileContentCommand) error {
	if msg.Trigger != "" {
		ctx = logging.ContextWithFields(ctx, map[string]any{"trigger": msg.Trigger})
	}
	report, err := h.service.Compile(ctx, compiler.CompileOptions{DryRun: msg.DryRun})
	h.last = report
	if msg.ResultCallback != nil && report != nil {
		msg.ResultCallback(report)
	}
	if err != nil {
		return err
	}
	logging.WithFields(h.logger, map[string]any{
		"trigger":   msg.Trigger,
		"dry_run":   msg.DryRun,
		"posts":     report.Posts,
		"projects":  report.Projects,
		"artifacts": len(report.Artifacts),
		"skipped":   len(report.Skipped),
		"pruned":    len(report.Pruned),
	}).Info("content.compile.completed")
	return nil
}
