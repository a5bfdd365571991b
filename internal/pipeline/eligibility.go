package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
)

type eligibilityStage struct{}

func (eligibilityStage) Name() string { return StageEligibility }

func (s eligibilityStage) Run(ctx context.Context, deps Deps, rec *Record) {
	res, err := deps.Eligibility.Classify(ctx, rec.Profile)
	if err != nil {
		deps.warnIf(s.Name(), rec.setEligibility(Negative(failureReason(s.Name(), err))))
		deps.Logger.Warn("eligibility classification failed",
			zap.String(logger.FieldStage, s.Name()),
			zap.Error(err),
		)
		return
	}

	switch res.Verdict {
	case ai.EligibilityTech:
		deps.warnIf(s.Name(), rec.setEligibility(Positive(string(CategoryTech))))
		deps.warnIf(s.Name(), rec.setCategory(CategoryTech))
	case ai.EligibilitySales:
		deps.warnIf(s.Name(), rec.setEligibility(Positive(string(CategorySales))))
		deps.warnIf(s.Name(), rec.setCategory(CategorySales))
	case ai.EligibilityReject:
		deps.warnIf(s.Name(), rec.setEligibility(Negative(reasonOr(res.Reason, "Application not suitable at this time."))))
	default:
		deps.warnIf(s.Name(), rec.setEligibility(Negative("invalid response from collaborator")))
	}

	deps.Logger.Info("eligibility decided",
		zap.String(logger.FieldStage, s.Name()),
		zap.String("verdict", string(res.Verdict)),
		zap.String("reason", res.Reason),
	)
}
