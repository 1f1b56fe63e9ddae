package discount

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Code prefixes, kept stable because clients and the admin dashboard key off
// them.
const (
	userCodePrefix      = "DISCOUNT-"
	adminGlobalPrefix   = "ADMIN-DISCOUNT-"
	adminUserCodePrefix = "ADMIN-USER-"
)

// SuffixFunc produces a unique code suffix on every call. Uniqueness must
// hold for the lifetime of the process.
type SuffixFunc func() string

// DefaultSuffix returns a SuffixFunc combining a monotonic counter with a
// random UUID fragment. The counter alone guarantees process-local
// uniqueness; the random fragment keeps codes unguessable.
func DefaultSuffix() SuffixFunc {
	var seq atomic.Uint64
	return func() string {
		id := strings.ToUpper(uuid.NewString())
		return fmt.Sprintf("%d-%s", seq.Add(1), id[:8])
	}
}
