package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/slotpool"
)

type stubGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := s.calls
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func TestScreenerClassify(t *testing.T) {
	stub := &stubGenerator{responses: []string{"```json\n{\"verdict\": \"tech\", \"reason\": \"\"}\n```"}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	res, err := screener.Classify(context.Background(), "a backend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Verdict != ai.EligibilityTech {
		t.Fatalf("expected tech verdict, got %q", res.Verdict)
	}

	if res.Reason != "" {
		t.Fatalf("expected empty reason, got %q", res.Reason)
	}

	if !strings.Contains(stub.prompts[0], "a backend engineer") {
		t.Fatalf("expected profile in prompt")
	}
}

func TestScreenerClassifyReject(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"verdict": "reject", "reason": "graduates in 2026"}`}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	res, err := screener.Classify(context.Background(), "a student")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Verdict != ai.EligibilityReject {
		t.Fatalf("expected reject verdict, got %q", res.Verdict)
	}

	if res.Reason != "graduates in 2026" {
		t.Fatalf("unexpected reason: %q", res.Reason)
	}
}

func TestScreenerClassifyInvalidVerdict(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"verdict": "maybe", "reason": ""}`}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	_, err := screener.Classify(context.Background(), "profile")
	if !errors.Is(err, ai.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestScreenerClassifyUnparseablePayload(t *testing.T) {
	stub := &stubGenerator{responses: []string{"I cannot answer that."}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	_, err := screener.Classify(context.Background(), "profile")
	if !errors.Is(err, ai.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestScreenerFitClassifiersCarryTheirJD(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"verdict": "select", "reason": ""}`}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	if _, err := screener.TechFit().Evaluate(context.Background(), "profile"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "Senior Software Engineer") {
		t.Fatalf("expected tech JD in prompt")
	}

	if _, err := screener.SalesFit().Evaluate(context.Background(), "profile"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.prompts[1], "Account Executive") {
		t.Fatalf("expected sales JD in prompt")
	}
}

func TestScreenerCultural(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"verdict": "reject", "reason": "remote-only preference"}`}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	res, err := screener.Cultural().Evaluate(context.Background(), "I prefer working from home.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Verdict != ai.FitReject {
		t.Fatalf("expected reject verdict, got %q", res.Verdict)
	}

	if !strings.Contains(stub.prompts[0], "Our Culture & Values") {
		t.Fatalf("expected culture statement in prompt")
	}
	if !strings.Contains(stub.prompts[0], "I prefer working from home.") {
		t.Fatalf("expected cover letter in prompt")
	}
}

func TestScreenerAssemble(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"details": "communication on 2025-10-06, case study on 2025-10-07", "slot_ids": ["a", "b"], "unavailable": ""}`,
	}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	res, err := screener.Assemble(context.Background(), &ai.ScheduleRequest{
		Role:     "sales",
		Required: []slotpool.Category{slotpool.CategoryCommunication, slotpool.CategoryCaseStudy},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Details == "" || res.Unavailable != "" {
		t.Fatalf("expected details without unavailable, got %+v", res)
	}

	if len(res.SlotIDs) != 2 {
		t.Fatalf("expected 2 slot ids, got %d", len(res.SlotIDs))
	}
}

func TestScreenerAssembleMutualExclusivity(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{name: "both set", response: `{"details": "x", "slot_ids": ["a"], "unavailable": "y"}`},
		{name: "neither set", response: `{"details": "", "slot_ids": [], "unavailable": ""}`},
		{name: "slot count mismatch", response: `{"details": "x", "slot_ids": ["a"], "unavailable": ""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{responses: []string{tc.response}}
			screener := NewScreener(stub, zap.NewNop(), 0, 0)

			_, err := screener.Assemble(context.Background(), &ai.ScheduleRequest{
				Role:     "sales",
				Required: []slotpool.Category{slotpool.CategoryCommunication, slotpool.CategoryCaseStudy},
			})
			if !errors.Is(err, ai.ErrInvalidResponse) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestScreenerCompose(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"name": "Michael Chen"}`,
		`{"message": "Subject: Congratulations\n\nDear Michael Chen, ..."}`,
	}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	message, err := screener.Compose(context.Background(), ai.VerdictSelect, "interviews scheduled", "Michael Chen, engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(message, "Michael Chen") {
		t.Fatalf("expected personalized message, got %q", message)
	}

	if len(stub.prompts) != 2 {
		t.Fatalf("expected name extraction then composition, got %d calls", len(stub.prompts))
	}

	if !strings.Contains(stub.prompts[1], "Michael Chen") {
		t.Fatalf("expected extracted name in composition prompt")
	}
}

func TestScreenerComposeFallbackAddressee(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		`{"name": ""}`,
		`{"message": "Subject: Update\n\nDear Candidate, ..."}`,
	}}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	if _, err := screener.Compose(context.Background(), ai.VerdictReject, "not a fit", "anonymous profile"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.prompts[1], fallbackAddressee) {
		t.Fatalf("expected fallback addressee in composition prompt")
	}
}

func TestScreenerGeneratorErrorPropagates(t *testing.T) {
	stub := &stubGenerator{err: errors.New("transport down")}
	screener := NewScreener(stub, zap.NewNop(), 0, 0)

	_, err := screener.Classify(context.Background(), "profile")
	if err == nil || errors.Is(err, ai.ErrInvalidResponse) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "fenced", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fenced without language", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "padded", in: "  {\"a\": 1}\n", want: `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
