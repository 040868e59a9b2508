package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestArtifactUUIDIsStable(t *testing.T) {
	first := ArtifactUUID("api/posts/hello.json")
	second := ArtifactUUID(" /api/posts/../posts/hello.json ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected equivalent paths to share an id, got %s and %s", first, second)
	}
	if other := ArtifactUUID("api/posts/other.json"); other == first {
		t.Fatalf("expected distinct paths to produce distinct ids")
	}
}

func TestArtifactUUIDEmpty(t *testing.T) {
	if got := ArtifactUUID("  "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty path, got %s", got)
	}
	if got := ArtifactUUID("/"); got != uuid.Nil {
		t.Fatalf("expected nil uuid for root, got %s", got)
	}
}

func TestRecordUUIDNamespacesKinds(t *testing.T) {
	post := RecordUUID("post", "a")
	project := RecordUUID("Project", "a")
	if post == project {
		t.Fatalf("expected kinds to be namespaced")
	}
	if RecordUUID("project", "a") != project {
		t.Fatalf("expected kind to be case-insensitive")
	}
	if RecordUUID("", "a") != uuid.Nil {
		t.Fatalf("expected nil uuid without kind")
	}
}
