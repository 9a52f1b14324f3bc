package workspace

import "testing"

func TestValidationIssuesHighestSeverity(t *testing.T) {
	issues := ValidationIssues{
		{Severity: SeverityInfo, Message: "info"},
		{Severity: SeverityWarning, Message: "warning"},
	}
	if issues.HighestSeverity() != SeverityWarning {
		t.Errorf("got %v, want SeverityWarning", issues.HighestSeverity())
	}
}

func TestValidationIssuesHasErrors(t *testing.T) {
	issues := ValidationIssues{{Severity: SeverityError, Message: "fatal"}}
	if !issues.HasErrors() {
		t.Error("expected HasErrors to be true when a SeverityError issue is present")
	}
	if (ValidationIssues{}).HasErrors() {
		t.Error("expected an empty issue list to report no errors")
	}
}

func TestAddIssueAppends(t *testing.T) {
	info := &WorkspaceInfo{}
	info.AddIssue(SeverityWarning, "something odd")
	if len(info.ValidationIssues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(info.ValidationIssues))
	}
	if info.ValidationIssues[0].Message != "something odd" {
		t.Errorf("got %q", info.ValidationIssues[0].Message)
	}
}
