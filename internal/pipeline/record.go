package pipeline

import (
	"errors"
	"fmt"
)

// ErrAlreadySet is returned when a stage outcome that was already recorded is
// written a second time. Outcome fields are write-once for the lifetime of a run.
var ErrAlreadySet = errors.New("field already set")

// Status is the tri-state of a stage outcome.
type Status int

const (
	StatusUnset Status = iota
	StatusPositive
	StatusNegative
)

// Outcome is the recorded result of one stage. Detail is an optional payload on
// a positive outcome; Reason is mandatory on a negative one.
type Outcome struct {
	Status Status
	Detail string
	Reason string
}

// Positive builds a passing outcome with an optional detail payload.
func Positive(detail string) Outcome {
	return Outcome{Status: StatusPositive, Detail: detail}
}

// Negative builds a failing outcome with a human-readable reason.
func Negative(reason string) Outcome {
	return Outcome{Status: StatusNegative, Reason: reason}
}

// Category is the role track selected by the eligibility filter.
type Category string

const (
	CategoryTech  Category = "tech"
	CategorySales Category = "sales"
)

// Record is the single mutable state object threaded through one screening run.
// Inputs are set at construction and never change; each stage writes only its
// own designated fields through the write-once setters below.
type Record struct {
	Profile     string
	CoverLetter string

	Eligibility Outcome
	RoleFit     Outcome
	CulturalFit Outcome

	Category Category

	InterviewDetails string
	Unavailable      string

	Notification string
}

// NewRecord creates the state object for one run.
func NewRecord(profile, coverLetter string) *Record {
	return &Record{Profile: profile, CoverLetter: coverLetter}
}

func (r *Record) setEligibility(o Outcome) error {
	if r.Eligibility.Status != StatusUnset {
		return fmt.Errorf("eligibility outcome: %w", ErrAlreadySet)
	}
	r.Eligibility = o
	return nil
}

func (r *Record) setCategory(c Category) error {
	if r.Category != "" {
		return fmt.Errorf("role category: %w", ErrAlreadySet)
	}
	r.Category = c
	return nil
}

func (r *Record) setRoleFit(o Outcome) error {
	if r.RoleFit.Status != StatusUnset {
		return fmt.Errorf("role fit outcome: %w", ErrAlreadySet)
	}
	r.RoleFit = o
	return nil
}

func (r *Record) setCulturalFit(o Outcome) error {
	if r.CulturalFit.Status != StatusUnset {
		return fmt.Errorf("cultural fit outcome: %w", ErrAlreadySet)
	}
	r.CulturalFit = o
	return nil
}

// setSchedule records the scheduling result. Exactly one of details and
// unavailable must be non-empty; at most one of the two fields is ever populated.
func (r *Record) setSchedule(details, unavailable string) error {
	if r.InterviewDetails != "" || r.Unavailable != "" {
		return fmt.Errorf("scheduling result: %w", ErrAlreadySet)
	}
	if (details == "") == (unavailable == "") {
		return errors.New("scheduling result: exactly one of details and unavailable must be set")
	}
	r.InterviewDetails = details
	r.Unavailable = unavailable
	return nil
}

func (r *Record) setNotification(message string) error {
	if r.Notification != "" {
		return fmt.Errorf("notification: %w", ErrAlreadySet)
	}
	r.Notification = message
	return nil
}
