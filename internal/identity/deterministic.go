package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-composer"

// UUID derives a deterministic UUID from key. Keys must be prefixed by
// entity kind so different entities never collide.
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

// PageDocumentUUID is the storage id of a tenant page document.
func PageDocumentUUID(tenantID, slug string) uuid.UUID {
	return UUID(namespace + ":page:" + strings.TrimSpace(tenantID) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// GlobalVariantsUUID is the storage id of the variants shared by every page
// of a tenant.
func GlobalVariantsUUID(tenantID string) uuid.UUID {
	return UUID(namespace + ":globals:" + strings.TrimSpace(tenantID))
}
