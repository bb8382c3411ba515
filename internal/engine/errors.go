package engine

import (
	"fmt"

	"ascend/internal/dateutil"
)

// TaskNotFoundError is returned when an operation references an unknown
// task id. Callers decide whether to surface or ignore it.
type TaskNotFoundError struct {
	ID int64
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// AlreadyCompletedError rejects a second same-day completion of a
// non-repeatable task. No state was changed.
type AlreadyCompletedError struct {
	TaskID int64
	Day    dateutil.Key
}

func (e AlreadyCompletedError) Error() string {
	return fmt.Sprintf("task %d already completed on %s", e.TaskID, e.Day)
}

// SnapshotFormatError rejects an import document whose shape is invalid.
// The import is refused atomically; prior state is untouched.
type SnapshotFormatError struct {
	Reason string
}

func (e SnapshotFormatError) Error() string {
	return "malformed snapshot: " + e.Reason
}
