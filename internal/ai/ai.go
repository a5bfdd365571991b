// Package ai defines the typed contracts for the external collaborators the
// screening pipeline delegates semantic judgment to. Implementations live in
// provider subpackages; the pipeline only sees these interfaces.
package ai

import (
	"context"
	"errors"

	"github.com/dmaslov/applicant-screener/internal/slotpool"
)

// ErrInvalidResponse marks a collaborator reply whose verdict falls outside the
// declared enumeration. Callers distinguish it from transport failures with
// errors.Is.
var ErrInvalidResponse = errors.New("invalid response from collaborator")

// EligibilityVerdict is the outcome of the initial profile filter.
type EligibilityVerdict string

const (
	EligibilityReject EligibilityVerdict = "reject"
	EligibilityTech   EligibilityVerdict = "tech"
	EligibilitySales  EligibilityVerdict = "sales"
)

// FitVerdict is the outcome of a role-fit or cultural-fit evaluation.
type FitVerdict string

const (
	FitSelect FitVerdict = "select"
	FitReject FitVerdict = "reject"
)

// Verdict is the final decision passed to the notification composer.
type Verdict string

const (
	VerdictSelect Verdict = "select"
	VerdictReject Verdict = "reject"
)

// EligibilityResult carries the filter verdict. Reason is non-empty only when
// the verdict is reject.
type EligibilityResult struct {
	Verdict EligibilityVerdict
	Reason  string
}

// FitResult carries a select/reject verdict. Reason is non-empty only when the
// verdict is reject.
type FitResult struct {
	Verdict FitVerdict
	Reason  string
}

// ScheduleRequest is the input to the scheduling assembler: the categories the
// interview loop requires, the remaining slots per required category, and the
// full pool snapshot for context.
type ScheduleRequest struct {
	Role       string
	Required   []slotpool.Category
	ByCategory map[slotpool.Category][]slotpool.Slot
	AllSlots   []slotpool.Slot
}

// ScheduleResult carries either a human-readable interview description plus
// the references of the selected slots, or a non-empty explanation why no slots
// could be assembled. Exactly one of Details and Unavailable is populated.
type ScheduleResult struct {
	Details     string
	SlotIDs     []string
	Unavailable string
}

// EligibilityClassifier decides whether a profile is worth shortlisting and for
// which role track.
type EligibilityClassifier interface {
	Classify(ctx context.Context, profile string) (*EligibilityResult, error)
}

// FitClassifier evaluates a profile against a fixed set of role requirements.
// Two instances exist in practice, one per role track.
type FitClassifier interface {
	Evaluate(ctx context.Context, profile string) (*FitResult, error)
}

// CulturalClassifier evaluates a cover letter against the company culture
// statement.
type CulturalClassifier interface {
	Evaluate(ctx context.Context, coverLetter string) (*FitResult, error)
}

// SchedulingAssembler picks concrete interview slots from the provided
// snapshots and describes them, or explains why it could not.
type SchedulingAssembler interface {
	Assemble(ctx context.Context, req *ScheduleRequest) (*ScheduleResult, error)
}

// NotificationComposer writes the outbound message for the applicant. It must
// tolerate arbitrary free text in reason, including failure messages produced
// by earlier stages.
type NotificationComposer interface {
	Compose(ctx context.Context, verdict Verdict, reason, profile string) (string, error)
}
