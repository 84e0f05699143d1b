package services

import "fmt"

// ValidationError rejects bad input before anything is persisted; the caller
// can re-prompt and retry the whole operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExtractionError wraps a failure of the OCR collaborator (or an unreadable
// image). Recoverable: the user retries the scan or switches to manual entry.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("label extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TotalsUpdateError reports a persistence failure that happened after the
// entry row was already durable. Retrying the whole RecordEntry would
// double-count the entry; the correct recovery is to retry only the totals
// arithmetic via RetryTotalsUpdate.
type TotalsUpdateError struct {
	EntryID uint
	Err     error
}

func (e *TotalsUpdateError) Error() string {
	return fmt.Sprintf("entry %d stored but day totals update failed: %v", e.EntryID, e.Err)
}

func (e *TotalsUpdateError) Unwrap() error { return e.Err }
