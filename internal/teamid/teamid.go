// Package teamid produces human-readable unique team identifiers.
package teamid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generate returns a fresh identifier of the form TEAM-XXXX-XXXX, where the
// two groups are the first eight hex digits of a random UUID, uppercased.
// No uniqueness check is performed here; the registration store's unique
// index is the backstop. Collision probability across 8 random hex digits is
// accepted as negligible for the expected volume.
func Generate() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TEAM-%s-%s", raw[0:4], raw[4:8])
}
