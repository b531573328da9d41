// Package loader fetches invoice documents by identifier from a static
// resource location and decodes them.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"time"
)

// Resource is the raw body of an invoice document plus its version marker.
type Resource struct {
	Body    []byte
	Version Version
}

// Version identifies a revision of an invoice resource.
type Version struct {
	Modified time.Time `json:"modified"`
	Digest   string    `json:"digest"`
}

// NewVersion builds the marker for body last modified at modified.
func NewVersion(modified time.Time, body []byte) Version {
	sum := sha256.Sum256(body)
	return Version{Modified: modified.UTC(), Digest: hex.EncodeToString(sum[:])}
}

// Newer reports whether v supersedes prev. A later modification time wins;
// at the same time (or when the source gives none) a changed body wins.
func (v Version) Newer(prev Version) bool {
	if v.Modified.After(prev.Modified) {
		return true
	}
	return v.Modified.Equal(prev.Modified) && v.Digest != prev.Digest
}

// String renders the marker as an opaque token for clients.
func (v Version) String() string {
	if len(v.Digest) > 16 {
		return v.Modified.Format(time.RFC3339) + "-" + v.Digest[:16]
	}
	return v.Modified.Format(time.RFC3339) + "-" + v.Digest
}

// Source retrieves raw invoice resources. Implementations return an error
// wrapping ErrNotFound or ErrNetwork.
type Source interface {
	Fetch(ctx context.Context, id string) (*Resource, error)
}

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidID reports whether id can name an invoice resource. Ids are used
// as path segments, so anything that could escape the resource location
// is rejected.
func ValidID(id string) bool {
	return validID.MatchString(id)
}

// ResourceName is the file name of an invoice resource.
func ResourceName(id string) string {
	return id + ".json"
}
