// Package publish writes compiler output into the publish tree. Every file
// written through a Writer is recorded as an Artifact with its size and an
// xxhash checksum, which feeds the optional build manifest.
package publish
