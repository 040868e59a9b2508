package identity

import (
	"path"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ArtifactUUID identifies a file of the publish tree by its relative path.
func ArtifactUUID(artifactPath string) uuid.UUID {
	cleaned := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(artifactPath)), "/")
	if cleaned == "" {
		return uuid.Nil
	}
	return UUID("portfolio:artifact:" + cleaned)
}

// RecordUUID identifies a published record by kind and id, for example
// ("post", "hello-world").
func RecordUUID(kind, id string) uuid.UUID {
	kind = strings.ToLower(strings.TrimSpace(kind))
	id = strings.TrimSpace(id)
	if kind == "" || id == "" {
		return uuid.Nil
	}
	return UUID("portfolio:" + kind + ":" + id)
}
