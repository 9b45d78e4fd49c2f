package conversation

import (
	"regexp"

	"github.com/google/uuid"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// NewID returns a fresh conversation id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is acceptable as a client-supplied conversation id.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
