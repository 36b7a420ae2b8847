package records

import (
	"errors"
	"fmt"
	"math"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// ErrIDSpaceExhausted is returned once every u64 id has been handed out.
var ErrIDSpaceExhausted = errors.New("id space exhausted")

// NextID returns the current counter value and stores value+1. Ids are
// shared by all entity tables and are never reused, even when the insert
// that follows fails.
func NextID(c types.Counter) (uint64, error) {
	id, err := c.Get()
	if err != nil {
		return 0, fmt.Errorf("reading id counter: %w", err)
	}
	if id == math.MaxUint64 {
		return 0, ErrIDSpaceExhausted
	}
	if err := c.Set(id + 1); err != nil {
		return 0, fmt.Errorf("advancing id counter: %w", err)
	}
	return id, nil
}
