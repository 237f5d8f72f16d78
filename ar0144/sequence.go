package ar0144

import (
	"context"
	"fmt"
)

// SequenceError reports a register table application that stopped partway
// through. Index is the position of the failing entry; everything before it
// has already reached the device.
type SequenceError struct {
	Table string
	Index int
	cause error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("ar0144: table %q failed at entry %d: %v", e.Table, e.Index, e.cause)
}

func (e *SequenceError) Unwrap() error { return e.cause }

// apply writes a table in order and stops at the first failing entry; entries
// past the failure are never attempted. Writes already issued cannot be taken
// back, so after a failure the device configuration is indeterminate and the
// recovery path is a full power cycle.
func (c *channel) apply(ctx context.Context, table regTable) error {
	for i, entry := range table.entries {
		if err := c.writeReg(ctx, entry.addr, entry.val); err != nil {
			return &SequenceError{Table: table.name, Index: i, cause: err}
		}
	}
	return nil
}
