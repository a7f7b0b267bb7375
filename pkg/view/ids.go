package view

import (
	"github.com/google/uuid"
)

// idNamespace scopes generated ids so they cannot collide with other SHA1
// UUIDs derived from URLs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/goliatone/go-sdui/view"))

// StableID returns explicit when set, and otherwise a name-based UUID derived
// from the node path. The same tree always yields the same ids.
func StableID(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	return uuid.NewSHA1(idNamespace, []byte(path)).String()
}
