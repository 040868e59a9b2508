package compiler

import (
	"context"

	"github.com/goliatone/go-portfolio/internal/publish"
)

// writeManifest records the artifacts of the run and, when pruning is
// enabled, removes files the previous run produced that this run did not.
func (r *run) writeManifest(ctx context.Context) StepOutcome {
	if !r.cfg.Manifest {
		return skipped(StepManifest, "manifest disabled")
	}
	logger := r.stepLogger(StepManifest, publish.ManifestFileName, "")

	previous, err := publish.ReadManifest(r.writer.Fs())
	if err != nil {
		logger.Warn("compiler.manifest.previous_unreadable", "error", err)
		previous = nil
	}

	current := publish.NewManifest(r.writer.Artifacts(), r.now())
	if r.cfg.PruneStale {
		stale := publish.Stale(previous, current)
		if r.report.DryRun {
			r.report.Pruned = stale
		} else {
			removed, err := r.writer.Prune(ctx, stale)
			r.report.Pruned = removed
			if err != nil {
				logger.Warn("compiler.manifest.failed", "error", err)
				return failed(StepManifest, "prune stale artifacts", err)
			}
		}
		for _, name := range r.report.Pruned {
			logger.Info("compiler.manifest.pruned", "path", name, "dry_run", r.report.DryRun)
		}
	}

	if err := r.writer.WriteManifest(ctx, current); err != nil {
		logger.Warn("compiler.manifest.failed", "error", err)
		return failed(StepManifest, "write manifest", err)
	}
	return completed(StepManifest, 1)
}
