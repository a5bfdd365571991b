package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
	"github.com/dmaslov/applicant-screener/internal/slotpool"
)

// Stage names double as routing table keys.
const (
	StageEligibility = "eligibility"
	StageTechFit     = "tech_fit"
	StageSalesFit    = "sales_fit"
	StageCulturalFit = "cultural_fit"
	StageScheduler   = "scheduler"
	StageNotifier    = "notifier"

	stageEnd = ""
)

// Stage is a single decision step. Run reads only fields populated by earlier
// stages and writes only the stage's own fields. It never returns an error:
// any collaborator failure is converted into a negative outcome on the record.
type Stage interface {
	Name() string
	Run(ctx context.Context, deps Deps, rec *Record)
}

// Deps aggregates the collaborators shared across all stages. It is built once
// at pipeline construction and torn down with the process.
type Deps struct {
	Logger      *zap.Logger
	Eligibility ai.EligibilityClassifier
	TechFit     ai.FitClassifier
	SalesFit    ai.FitClassifier
	Cultural    ai.CulturalClassifier
	Assembler   ai.SchedulingAssembler
	Composer    ai.NotificationComposer
	Pool        *slotpool.Pool
}

// warnIf logs a write-once violation. Stages own disjoint record fields, so a
// non-nil error here means a stage ran twice or wrote outside its fields.
func (d Deps) warnIf(stage string, err error) {
	if err == nil {
		return
	}
	d.Logger.Warn("record write rejected",
		zap.String(logger.FieldStage, stage),
		zap.Error(err),
	)
}

// failureReason converts a collaborator error into the reason text recorded on
// the stage's negative outcome. Out-of-enum replies get the fixed invalid
// response wording so routing never sees an arbitrary value.
func failureReason(stage string, err error) string {
	if errors.Is(err, ai.ErrInvalidResponse) {
		return "invalid response from collaborator"
	}
	return fmt.Sprintf("%s failed: %v", stage, err)
}

func reasonOr(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
