// Package sessionid provides globally unique opaque session identifiers.
package sessionid

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// New returns a new opaque session id. UUIDv4 under normal operation; if the
// system entropy source fails, falls back to a timestamp+random scheme so that
// collision probability stays negligible.
func New() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("session-%d-%08x", time.Now().UnixMilli(), rand.Uint32())
	}
	return id.String()
}
