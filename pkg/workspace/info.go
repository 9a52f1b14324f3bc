package workspace

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Severity classifies a ValidationIssue.
type Severity int

const (
	// SeverityInfo marks an informational note with no impact on success.
	SeverityInfo Severity = iota
	// SeverityWarning marks a recoverable issue: the preparation may still
	// succeed.
	SeverityWarning
	// SeverityError marks a fatal issue: the preparation failed.
	SeverityError
)

// String returns a human-readable name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ValidationIssue is a single problem accrued during preparation.
type ValidationIssue struct {
	Message  string
	Severity Severity
}

// ValidationIssues is a sequence of ValidationIssue with convenience
// accessors.
type ValidationIssues []ValidationIssue

// HighestSeverity returns the highest severity present, or SeverityInfo if
// the list is empty.
func (issues ValidationIssues) HighestSeverity() Severity {
	highest := SeverityInfo
	for _, issue := range issues {
		if issue.Severity > highest {
			highest = issue.Severity
		}
	}
	return highest
}

// HasErrors reports whether any issue is of SeverityError.
func (issues ValidationIssues) HasErrors() bool {
	return issues.HighestSeverity() == SeverityError
}

// WorkspaceInfo is the output of a preparation run.
type WorkspaceInfo struct {
	Id                string
	WorkspacePath     string
	GameClientId      string
	Strategy          Strategy
	CreatedAt         *timestamppb.Timestamp
	LastAccessedAt    *timestamppb.Timestamp
	FileCount         int
	TotalSizeBytes    int64
	ExecutablePath    string
	WorkingDirectory  string
	IsPrepared        bool
	IsValid           bool
	ValidationIssues  ValidationIssues
}

// AddIssue appends a validation issue to a WorkspaceInfo under construction.
func (info *WorkspaceInfo) AddIssue(severity Severity, message string) {
	info.ValidationIssues = append(info.ValidationIssues, ValidationIssue{
		Message:  message,
		Severity: severity,
	})
}
