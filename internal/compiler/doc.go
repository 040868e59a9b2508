// Package compiler turns the content source tree into the publish tree: posts
// rendered from Markdown, the combined project list, the timeline, the resume
// binaries and the media mirror.
//
// Posts and projects are mandatory and their failures abort a run. Resume and
// media are optional: their problems are recorded as a StepOutcome and the
// run carries on.
package compiler
