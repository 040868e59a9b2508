package compiler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/markdown"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var (
	// ErrPostsDirMissing is returned when the mandatory posts directory does not exist.
	ErrPostsDirMissing = errors.New("compiler: posts directory not found")
	// ErrSourceRequired indicates a missing content source filesystem.
	ErrSourceRequired = errors.New("compiler: content source filesystem is required")
	// ErrPublishRequired indicates a missing publish filesystem.
	ErrPublishRequired = errors.New("compiler: publish filesystem is required")
)

// Source layout, relative to the content root.
const (
	postsDir         = "posts"
	projectsFile     = "projects.json"
	experimentalFile = "experimental.json"
	timelineFile     = "timeline.json"
	resumeDir        = "resume"
	resumeMetaFile   = "resume.json"
	mediaDir         = "media"
	postExtension    = ".md"
	resumeExtension  = ".pdf"
)

// Service describes the content compiler contract.
type Service interface {
	Compile(ctx context.Context, opts CompileOptions) (*Report, error)
}

// Config captures runtime behaviour toggles for the compiler.
type Config struct {
	// APIDir holds the JSON documents, relative to the publish root.
	APIDir           string
	Markdown         interfaces.ParseOptions
	Manifest         bool
	PruneStale       bool
	ValidateProjects bool
	ValidateTimeline bool
}

// CompileOptions narrows the behaviour of a single run.
type CompileOptions struct {
	// DryRun keeps every write in memory. The existing publish tree is only read.
	DryRun bool
}

// Dependencies lists the collaborators of the compiler. Source and Publish are
// rooted at the content and publish directories respectively.
type Dependencies struct {
	Source  afero.Fs
	Publish afero.Fs
	Parser  interfaces.MarkdownParser
	Logger  interfaces.Logger

	// MarkdownLogger receives post loading events. Defaults to Logger.
	MarkdownLogger interfaces.Logger
}

// NewService wires a compiler with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Source == nil {
		return nil, ErrSourceRequired
	}
	if deps.Publish == nil {
		return nil, ErrPublishRequired
	}
	if deps.Parser == nil {
		deps.Parser = markdown.NewGoldmarkParser(cfg.Markdown)
	}
	deps.Logger = logging.Ensure(deps.Logger)
	if deps.MarkdownLogger == nil {
		deps.MarkdownLogger = deps.Logger
	}

	cfg.APIDir = strings.Trim(path.Clean("/"+strings.TrimSpace(cfg.APIDir)), "/")
	if cfg.APIDir == "" {
		cfg.APIDir = "api"
	}

	return &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}, nil
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

// run holds the state of a single Compile call.
type run struct {
	*service
	writer   *publish.Writer
	markdown *markdown.Service
	report   *Report
	logger   interfaces.Logger
}

func (s *service) Compile(ctx context.Context, opts CompileOptions) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	target := s.deps.Publish
	if opts.DryRun {
		target = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(s.deps.Publish), afero.NewMemMapFs())
	}

	md, err := markdown.NewService(s.deps.Source, markdown.Config{
		Extension: postExtension,
		Parser:    s.cfg.Markdown,
		Logger:    s.deps.MarkdownLogger,
	}, s.deps.Parser)
	if err != nil {
		return nil, err
	}

	r := &run{
		service:  s,
		writer:   publish.NewWriter(target),
		markdown: md,
		report:   &Report{DryRun: opts.DryRun},
		logger:   s.deps.Logger.WithContext(ctx),
	}
	r.logger.Info("compiler.started", "api_dir", s.cfg.APIDir, "dry_run", opts.DryRun)

	if err := r.writer.EnsureDir(ctx, s.cfg.APIDir); err != nil {
		return r.finish(start), err
	}

	mandatory := []func(context.Context) (StepOutcome, error){
		r.compilePosts,
		r.compileProjects,
	}
	for _, step := range mandatory {
		outcome, err := step(ctx)
		r.report.record(outcome)
		if err != nil {
			r.logger.Error("compiler.failed", "step", outcome.Step, "error", err)
			return r.finish(start), err
		}
	}

	r.report.record(r.compileResume(ctx))

	outcome, err := r.compileTimeline(ctx)
	r.report.record(outcome)
	if err != nil {
		r.logger.Error("compiler.failed", "step", outcome.Step, "error", err)
		return r.finish(start), err
	}

	r.report.record(r.copyMedia(ctx))
	r.report.record(r.writeManifest(ctx))

	report := r.finish(start)
	r.logger.Info("compiler.completed",
		"posts", report.Posts,
		"projects", report.Projects,
		"artifacts", len(report.Artifacts),
		"skipped", len(report.Skipped),
		"orphans", len(report.Orphans),
		"duration", report.Duration,
	)
	return report, nil
}

func (r *run) finish(start time.Time) *Report {
	r.report.Artifacts = r.writer.Artifacts()
	r.report.Duration = r.now().Sub(start)
	return r.report
}

func (r *run) apiPath(elems ...string) string {
	return path.Join(append([]string{r.cfg.APIDir}, elems...)...)
}

func (r *run) stepLogger(step Step, source, recordID string) interfaces.Logger {
	return logging.WithStepContext(r.logger, string(step), source, recordID)
}

func (r *run) skip(step Step, source, recordID, reason string) {
	r.stepLogger(step, source, recordID).Warn("compiler."+string(step)+".skipped", "reason", reason)
	r.report.Skipped = append(r.report.Skipped, RecordIssue{Step: step, Source: source, RecordID: recordID, Reason: reason})
}

func (r *run) warn(step Step, source, recordID, reason string) {
	r.stepLogger(step, source, recordID).Warn("compiler."+string(step)+".warning", "reason", reason)
	r.report.Warnings = append(r.report.Warnings, RecordIssue{Step: step, Source: source, RecordID: recordID, Reason: reason})
}

func (r *run) orphan(step Step, source, reason string) {
	r.stepLogger(step, source, "").Warn("compiler."+string(step)+".orphaned", "reason", reason)
	r.report.Orphans = append(r.report.Orphans, RecordIssue{Step: step, Source: source, Reason: reason})
}

func wrapStep(step Step, err error) error {
	return fmt.Errorf("compiler: %s: %w", step, err)
}
