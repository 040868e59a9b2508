package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/publish"
)

// compileResume copies resume/*.pdf and resume/resume.json into the publish
// tree and aliases the current version as resume/resume-latest.pdf. It never
// aborts the run.
func (r *run) compileResume(ctx context.Context) StepOutcome {
	metaPath := path.Join(resumeDir, resumeMetaFile)
	logger := r.stepLogger(StepResume, metaPath, "")

	data, err := afero.ReadFile(r.deps.Source, metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("compiler.resume.skipped", "reason", "no resume metadata found")
			return skipped(StepResume, "no resume metadata found")
		}
		logger.Warn("compiler.resume.failed", "error", err)
		return failed(StepResume, "read resume metadata", err)
	}

	meta, err := content.ParseResumeMetadata(data)
	if err != nil {
		logger.Warn("compiler.resume.skipped", "reason", "unreadable resume metadata", "error", err)
		return skipped(StepResume, "unreadable resume metadata")
	}
	if !meta.HasCurrentVersion() {
		logger.Info("compiler.resume.skipped", "reason", "resume metadata has no current_version")
		return skipped(StepResume, "resume metadata has no current_version")
	}

	written, err := r.copyResumeFiles(ctx)
	if err != nil {
		logger.Warn("compiler.resume.failed", "error", err)
		outcome := failed(StepResume, "copy resume files", err)
		outcome.Artifacts = written
		return outcome
	}

	if err := r.writer.WriteJSON(ctx, metaPath, publish.CategoryResume, "", meta.Raw); err != nil {
		logger.Warn("compiler.resume.failed", "error", err)
		outcome := failed(StepResume, "write resume metadata", err)
		outcome.Artifacts = written
		return outcome
	}
	written++

	filename, ok := meta.CurrentFilename()
	if !ok {
		reason := fmt.Sprintf("current_version %v is not listed in versions", meta.CurrentVersion)
		logger.Warn("compiler.resume.latest_unresolved", "reason", reason)
		outcome := completed(StepResume, written)
		outcome.Reason = reason
		return outcome
	}
	if !content.SafeName(filename) {
		err := fmt.Errorf("%w: %q", content.ErrUnsafeID, filename)
		logger.Warn("compiler.resume.failed", "error", err)
		outcome := failed(StepResume, "resolve latest resume", err)
		outcome.Artifacts = written
		return outcome
	}

	latest := path.Join(resumeDir, content.LatestResumeName)
	if err := r.writer.CopyFile(ctx, r.writer.Fs(), path.Join(resumeDir, filename), latest, publish.CategoryResume); err != nil {
		logger.Warn("compiler.resume.failed", "error", err)
		outcome := failed(StepResume, "copy latest resume", err)
		outcome.Artifacts = written
		return outcome
	}
	written++

	logger.Info("compiler.resume.generated", "latest", filename)
	return completed(StepResume, written)
}

func (r *run) copyResumeFiles(ctx context.Context) (int, error) {
	entries, err := afero.ReadDir(r.deps.Source, resumeDir)
	if err != nil {
		return 0, err
	}
	if err := r.writer.EnsureDir(ctx, resumeDir); err != nil {
		return 0, err
	}
	written := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resumeExtension) {
			continue
		}
		name := path.Join(resumeDir, entry.Name())
		if err := r.writer.CopyFile(ctx, r.deps.Source, name, name, publish.CategoryResume); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
