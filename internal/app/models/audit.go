package models

import "time"

type AuditKind string

const (
	AuditCoverageOverrideSet     AuditKind = "coverage_override_set"
	AuditCoverageOverrideCleared AuditKind = "coverage_override_cleared"
	AuditCoverageOverrideApplied AuditKind = "coverage_override_applied"
	AuditPackageSessionPlanned   AuditKind = "package_session_planned"
	AuditSignatureCaptured       AuditKind = "signature_captured"
)

// AuditEntry is an append-only, attributable record of a manual action taken
// during checkout. Entries are never mutated or removed.
type AuditEntry struct {
	Kind       AuditKind `json:"kind" bson:"kind"`
	Code       string    `json:"code,omitempty" bson:"code,omitempty"`
	Actor      string    `json:"actor" bson:"actor"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
