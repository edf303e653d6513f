package out

import "tvshell/internal/modules/telemetry/domain"

// Sink accepts records without blocking. Write may drop a record and report
// why; callers log and move on.
type Sink interface {
	Write(record domain.Record) error
	Close() error
}
