package compiler

import (
	"context"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/publish"
)

// copyMedia mirrors the media tree. A missing media directory is not an error.
func (r *run) copyMedia(ctx context.Context) StepOutcome {
	logger := r.stepLogger(StepMedia, mediaDir, "")

	exists, err := afero.DirExists(r.deps.Source, mediaDir)
	if err != nil {
		logger.Warn("compiler.media.failed", "error", err)
		return failed(StepMedia, "stat media directory", err)
	}
	if !exists {
		logger.Debug("compiler.media.skipped", "reason", "no media directory")
		return skipped(StepMedia, "no media directory")
	}

	count, err := r.writer.Mirror(ctx, r.deps.Source, mediaDir, mediaDir, publish.CategoryMedia)
	if err != nil {
		logger.Warn("compiler.media.failed", "error", err)
		outcome := failed(StepMedia, "mirror media", err)
		outcome.Artifacts = count
		return outcome
	}
	logger.Debug("compiler.media.copied", "files", count)
	return completed(StepMedia, count)
}
