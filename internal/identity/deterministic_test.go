package identity_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/internal/identity"
)

func TestPageDocumentUUIDIsStable(t *testing.T) {
	a := identity.PageDocumentUUID("acme", "Home")
	b := identity.PageDocumentUUID(" acme ", "home")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected stable id, got %s and %s", a, b)
	}
	if a == identity.PageDocumentUUID("globex", "home") {
		t.Fatal("expected tenants to produce different ids")
	}
	if a == identity.GlobalVariantsUUID("acme") {
		t.Fatal("expected page and globals ids to differ")
	}
	if identity.UUID("  ") != uuid.Nil {
		t.Fatal("expected blank key to map to uuid.Nil")
	}
}
