package compilecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/compiler"
)

const compileContentMessageType = "portfolio.content.compile"

// Triggers recorded in logs so a rebuild can be traced back to its origin.
const (
	TriggerCLI   = "cli"
	TriggerWatch = "watch"
	TriggerServe = "serve"
)

// CompileContentCommand requests a full compile of the content tree.
type CompileContentCommand struct {
	// DryRun keeps writes in memory and leaves the publish tree untouched.
	DryRun bool `json:"dry_run,omitempty"`
	// Trigger names what asked for the compile.
	Trigger string `json:"trigger,omitempty"`
	// ResultCallback receives the report, including partial reports of failed runs.
	ResultCallback func(*compiler.Report) `json:"-"`
}

// Type implements command.Message.
func (CompileContentCommand) Type() string { return compileContentMessageType }

// Validate rejects unknown triggers.
func (cmd CompileContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Trigger, validation.By(func(value any) error {
			trigger := strings.TrimSpace(value.(string))
			switch trigger {
			case "", TriggerCLI, TriggerWatch, TriggerServe:
				return nil
			}
			return validation.NewError("portfolio.content.compile.trigger_unknown", "unknown trigger "+trigger)
		})),
	)
}
