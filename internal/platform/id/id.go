package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// ULID produces lexically sortable identifiers. The zero value is ready to use.
type ULID struct {
	mu      sync.Mutex
	entropy io.Reader
}

func (g *ULID) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.entropy == nil {
		g.entropy = ulid.Monotonic(rand.Reader, 0)
	}
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// Static always returns the same value.
type Static string

func (s Static) New() string { return string(s) }
