// Package markdown loads Markdown documents with a front-matter header and
// renders their bodies to HTML. Rendering sits behind
// interfaces.MarkdownParser so callers can inject a fixture renderer.
package markdown
