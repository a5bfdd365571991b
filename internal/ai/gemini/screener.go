package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
	"github.com/dmaslov/applicant-screener/internal/utils"
)

//go:embed prompts/eligibility.md
var eligibilityPrompt string

//go:embed prompts/role_fit.md
var roleFitPrompt string

//go:embed prompts/cultural_fit.md
var culturalFitPrompt string

//go:embed prompts/schedule.md
var schedulePrompt string

//go:embed prompts/notification.md
var notificationPrompt string

//go:embed prompts/extract_name.md
var extractNamePrompt string

//go:embed requirements/tech_jd.md
var techJD string

//go:embed requirements/sales_jd.md
var salesJD string

//go:embed requirements/culture.md
var cultureStatement string

const (
	defaultMaxLogLength = 200
	retryBackoff        = 2 * time.Second
	fallbackAddressee   = "Candidate"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Screener implements the collaborator contracts on top of a Gemini content
// generator. One instance is shared by all pipeline stages.
type Screener struct {
	generator  contentGenerator
	logger     *zap.Logger
	maxRetries int
	maxLogLen  int
}

func NewScreener(generator contentGenerator, log *zap.Logger, maxRetries, maxLogLength int) *Screener {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Screener{
		generator:  generator,
		logger:     logger.WithCommonFields(log, "gemini", generator.Model()),
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
	}
}

// Classify decides whether the profile is worth shortlisting and for which track.
func (s *Screener) Classify(ctx context.Context, profile string) (*ai.EligibilityResult, error) {
	prompt := strings.ReplaceAll(eligibilityPrompt, "{{PROFILE}}", profile)

	var payload struct {
		Verdict string `mapstructure:"verdict"`
		Reason  string `mapstructure:"reason"`
	}
	if err := s.ask(ctx, "eligibility", prompt, &payload); err != nil {
		return nil, err
	}

	verdict := ai.EligibilityVerdict(strings.ToLower(strings.TrimSpace(payload.Verdict)))
	switch verdict {
	case ai.EligibilityReject, ai.EligibilityTech, ai.EligibilitySales:
	default:
		return nil, fmt.Errorf("%w: eligibility verdict %q", ai.ErrInvalidResponse, payload.Verdict)
	}

	return &ai.EligibilityResult{Verdict: verdict, Reason: strings.TrimSpace(payload.Reason)}, nil
}

// TechFit returns a classifier bound to the tech role requirements.
func (s *Screener) TechFit() ai.FitClassifier {
	return &fitClassifier{screener: s, name: "tech_fit", jd: techJD}
}

// SalesFit returns a classifier bound to the sales role requirements.
func (s *Screener) SalesFit() ai.FitClassifier {
	return &fitClassifier{screener: s, name: "sales_fit", jd: salesJD}
}

type fitClassifier struct {
	screener *Screener
	name     string
	jd       string
}

func (f *fitClassifier) Evaluate(ctx context.Context, profile string) (*ai.FitResult, error) {
	prompt := strings.ReplaceAll(roleFitPrompt, "{{JOB_DESCRIPTION}}", f.jd)
	prompt = strings.ReplaceAll(prompt, "{{PROFILE}}", profile)

	return f.screener.evaluateFit(ctx, f.name, prompt)
}

// Cultural returns a classifier bound to the company culture statement.
func (s *Screener) Cultural() ai.CulturalClassifier {
	return &culturalClassifier{screener: s}
}

type culturalClassifier struct {
	screener *Screener
}

func (c *culturalClassifier) Evaluate(ctx context.Context, coverLetter string) (*ai.FitResult, error) {
	prompt := strings.ReplaceAll(culturalFitPrompt, "{{CULTURE}}", cultureStatement)
	prompt = strings.ReplaceAll(prompt, "{{COVER_LETTER}}", coverLetter)

	return c.screener.evaluateFit(ctx, "cultural_fit", prompt)
}

func (s *Screener) evaluateFit(ctx context.Context, op, prompt string) (*ai.FitResult, error) {
	var payload struct {
		Verdict string `mapstructure:"verdict"`
		Reason  string `mapstructure:"reason"`
	}
	if err := s.ask(ctx, op, prompt, &payload); err != nil {
		return nil, err
	}

	verdict := ai.FitVerdict(strings.ToLower(strings.TrimSpace(payload.Verdict)))
	switch verdict {
	case ai.FitSelect, ai.FitReject:
	default:
		return nil, fmt.Errorf("%w: fit verdict %q", ai.ErrInvalidResponse, payload.Verdict)
	}

	return &ai.FitResult{Verdict: verdict, Reason: strings.TrimSpace(payload.Reason)}, nil
}

// Assemble asks the model to pick one slot per required category and describe them.
func (s *Screener) Assemble(ctx context.Context, req *ai.ScheduleRequest) (*ai.ScheduleResult, error) {
	slots := map[string]any{
		"available_by_category": req.ByCategory,
		"all_slots":             req.AllSlots,
	}
	slotsJSON, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slots payload: %w", err)
	}

	required := make([]string, 0, len(req.Required))
	for _, c := range req.Required {
		required = append(required, string(c))
	}

	prompt := strings.ReplaceAll(schedulePrompt, "{{SLOTS_JSON}}", string(slotsJSON))
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", req.Role)
	prompt = strings.ReplaceAll(prompt, "{{REQUIRED}}", strings.Join(required, ", "))

	var payload struct {
		Details     string   `mapstructure:"details"`
		SlotIDs     []string `mapstructure:"slot_ids"`
		Unavailable string   `mapstructure:"unavailable"`
	}
	if err := s.ask(ctx, "schedule", prompt, &payload); err != nil {
		return nil, err
	}

	details := strings.TrimSpace(payload.Details)
	unavailable := strings.TrimSpace(payload.Unavailable)
	if (details == "") == (unavailable == "") {
		return nil, fmt.Errorf("%w: schedule must set exactly one of details and unavailable", ai.ErrInvalidResponse)
	}
	if details != "" && len(payload.SlotIDs) != len(req.Required) {
		return nil, fmt.Errorf("%w: schedule selected %d slots, want %d", ai.ErrInvalidResponse, len(payload.SlotIDs), len(req.Required))
	}

	return &ai.ScheduleResult{Details: details, SlotIDs: payload.SlotIDs, Unavailable: unavailable}, nil
}

// Compose writes the outbound message, addressing the applicant by the name
// extracted from the profile.
func (s *Screener) Compose(ctx context.Context, verdict ai.Verdict, reason, profile string) (string, error) {
	name := s.extractName(ctx, profile)

	prompt := strings.ReplaceAll(notificationPrompt, "{{NAME}}", name)
	prompt = strings.ReplaceAll(prompt, "{{VERDICT}}", string(verdict))
	prompt = strings.ReplaceAll(prompt, "{{REASON}}", reason)

	var payload struct {
		Message string `mapstructure:"message"`
	}
	if err := s.ask(ctx, "notification", prompt, &payload); err != nil {
		return "", err
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		return "", fmt.Errorf("%w: empty notification message", ai.ErrInvalidResponse)
	}

	return message, nil
}

// extractName never fails: any extraction problem falls back to a generic addressee.
func (s *Screener) extractName(ctx context.Context, profile string) string {
	prompt := strings.ReplaceAll(extractNamePrompt, "{{PROFILE}}", profile)

	var payload struct {
		Name string `mapstructure:"name"`
	}
	if err := s.ask(ctx, "extract_name", prompt, &payload); err != nil {
		s.logger.Debug("name extraction failed, using fallback addressee", zap.Error(err))
		return fallbackAddressee
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return fallbackAddressee
	}
	return name
}

// ask sends the prompt with bounded retries and decodes the JSON reply into out.
func (s *Screener) ask(ctx context.Context, op, prompt string, out any) error {
	s.logger.Debug("gemini request",
		zap.String("operation", op),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, s.maxLogLen)),
	)

	raw, err := s.generate(ctx, op, prompt)
	if err != nil {
		return err
	}

	s.logger.Debug("gemini response",
		zap.String("operation", op),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, s.maxLogLen)),
	)

	if err := decodeResponse(raw, out); err != nil {
		return fmt.Errorf("%w: %s", ai.ErrInvalidResponse, err)
	}

	return nil
}

func (s *Screener) generate(ctx context.Context, op, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, time.Duration(attempt)*retryBackoff); err != nil {
				return "", err
			}
			s.logger.Debug("retrying gemini request",
				zap.String("operation", op),
				zap.Int("attempt", attempt+1),
			)
		}

		raw, err := s.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}

	return "", lastErr
}
