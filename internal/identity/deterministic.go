package identity

import (
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

// ArticleUUID keys articles by their front matter url so re-imports land on
// the same record.
func ArticleUUID(url string) uuid.UUID {
	return UUID("go-corpus:article:" + strings.TrimSpace(url))
}

// RevisionUUID keys revision snapshots by article and content checksum.
func RevisionUUID(articleID uuid.UUID, checksum string) uuid.UUID {
	return UUID("go-corpus:revision:" + articleID.String() + ":" + strings.TrimSpace(checksum))
}
