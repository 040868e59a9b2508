package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"

	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/internal/validation"
)

// compileProjects concatenates projects.json and experimental.json into
// <api>/projects.json and writes <api>/projects/<id>.json for every item with
// an addressable id. Items without one stay in the aggregate as orphans.
func (r *run) compileProjects(ctx context.Context) (StepOutcome, error) {
	projects := r.readProjects(projectsFile)
	experimental := r.readProjects(experimentalFile)
	for i, item := range experimental {
		if err := item.DefaultKind(content.KindExperimental); err != nil {
			r.warn(StepProjects, itemSource(experimentalFile, i), "", "apply default kind: "+err.Error())
		}
	}

	combined := make([]content.Project, 0, len(projects)+len(experimental))
	combined = append(combined, projects...)
	combined = append(combined, experimental...)

	if r.cfg.ValidateProjects {
		r.validateProjects(combined, len(projects))
	}

	if err := r.writer.WriteJSON(ctx, r.apiPath("projects.json"), publish.CategoryProjectIndex, "", combined); err != nil {
		return failed(StepProjects, "write project index", err), wrapStep(StepProjects, err)
	}

	written := 1
	sources := map[string]string{}
	for i, item := range combined {
		source := projectSource(i, len(projects))
		id, err := item.ID()
		if err != nil {
			r.orphan(StepProjects, source, err.Error())
			continue
		}
		if previous, ok := sources[id]; ok {
			r.warn(StepProjects, source, id, "duplicate id, overrides "+previous)
		}
		sources[id] = source

		target := r.apiPath("projects", id+".json")
		if err := r.writer.WriteJSON(ctx, target, publish.CategoryProject, "project:"+id, item); err != nil {
			return failed(StepProjects, "write project", err), wrapStep(StepProjects, err)
		}
		written++
	}

	r.report.Projects = len(combined)
	return completed(StepProjects, written), nil
}

// readProjects loads a project array. A missing or unreadable source counts
// as an empty array.
func (r *run) readProjects(name string) []content.Project {
	logger := r.stepLogger(StepProjects, name, "")
	data, err := afero.ReadFile(r.deps.Source, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("compiler.projects.source_missing")
		} else {
			r.warn(StepProjects, name, "", "read source: "+err.Error())
		}
		return []content.Project{}
	}
	items, err := content.ParseProjects(data)
	if err != nil {
		r.warn(StepProjects, name, "", "ignored source: "+err.Error())
		return []content.Project{}
	}
	return items
}

func (r *run) validateProjects(items []content.Project, projectCount int) {
	schema, err := validation.ProjectSchema()
	if err != nil {
		r.logger.Error("compiler.projects.schema_unavailable", "error", err)
		return
	}
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			continue
		}
		if err := schema.ValidateJSON(data); err != nil {
			id, _ := item.ID()
			r.warn(StepProjects, projectSource(i, projectCount), id, "schema: "+err.Error())
		}
	}
}

func projectSource(index, projectCount int) string {
	if index < projectCount {
		return itemSource(projectsFile, index)
	}
	return itemSource(experimentalFile, index-projectCount)
}

func itemSource(file string, index int) string {
	return file + "#/" + strconv.Itoa(index)
}
