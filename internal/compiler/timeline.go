package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/internal/validation"
)

// compileTimeline republishes timeline.json unchanged. A missing or malformed
// source publishes an empty list.
func (r *run) compileTimeline(ctx context.Context) (StepOutcome, error) {
	doc, reason := r.readTimeline()

	if r.cfg.ValidateTimeline && reason == "" {
		if schema, err := validation.TimelineSchema(); err == nil {
			if err := schema.ValidateJSON(doc); err != nil {
				r.warn(StepTimeline, timelineFile, "", "schema: "+err.Error())
			}
		}
	}

	if err := r.writer.WriteJSON(ctx, r.apiPath("timeline.json"), publish.CategoryTimeline, "", doc); err != nil {
		return failed(StepTimeline, "write timeline", err), wrapStep(StepTimeline, err)
	}
	outcome := completed(StepTimeline, 1)
	outcome.Reason = reason
	return outcome, nil
}

func (r *run) readTimeline() (json.RawMessage, string) {
	logger := r.stepLogger(StepTimeline, timelineFile, "")
	data, err := afero.ReadFile(r.deps.Source, timelineFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("compiler.timeline.source_missing")
			return content.EmptyCollection, "timeline source not found"
		}
		r.warn(StepTimeline, timelineFile, "", "read source: "+err.Error())
		return content.EmptyCollection, "timeline source unreadable"
	}
	doc, err := content.ParseDocument(data)
	if err != nil {
		r.warn(StepTimeline, timelineFile, "", "ignored source: "+err.Error())
		return content.EmptyCollection, "timeline source invalid"
	}
	return doc, ""
}
