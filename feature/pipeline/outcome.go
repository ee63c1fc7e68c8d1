package pipeline

import "sales-reconciler/core/domain"

// Outcome classifies a completed (non-fatal) run for the process exit code.
type Outcome int

const (
	// OutcomeClean: no findings at all.
	OutcomeClean Outcome = iota
	// OutcomeIssues: data-quality findings exist but every one of them is
	// attributable.
	OutcomeIssues
	// OutcomeDefect: orphaned identifiers or unexplained losses exist,
	// which indicate a bug in the pipeline itself.
	OutcomeDefect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeIssues:
		return "issues"
	case OutcomeDefect:
		return "defect"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to the process exit code contract: 0 clean,
// 2 attributable issues, 3 defect-class findings. Code 1 is reserved for
// fatal errors and assigned by the command layer.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeIssues:
		return 2
	case OutcomeDefect:
		return 3
	default:
		return 0
	}
}

// classify derives the outcome from the run's findings.
func classify(issues []domain.Issue, report *domain.ReconciliationReport) Outcome {
	if report.HasDefects() {
		return OutcomeDefect
	}
	if len(issues) > 0 {
		return OutcomeIssues
	}
	return OutcomeClean
}
