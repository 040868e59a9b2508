// Package content models the records the compiler publishes: posts rendered
// from Markdown, project records sourced from JSON arrays, the timeline and
// the resume metadata.
package content
