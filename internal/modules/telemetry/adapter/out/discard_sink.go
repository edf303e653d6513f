package out

import "tvshell/internal/modules/telemetry/domain"

// DiscardSink drops everything. Used when telemetry is turned off.
type DiscardSink struct{}

func (DiscardSink) Write(domain.Record) error { return nil }
func (DiscardSink) Close() error              { return nil }
