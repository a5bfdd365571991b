package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
)

type culturalFitStage struct{}

func (culturalFitStage) Name() string { return StageCulturalFit }

func (s culturalFitStage) Run(ctx context.Context, deps Deps, rec *Record) {
	res, err := deps.Cultural.Evaluate(ctx, rec.CoverLetter)
	if err != nil {
		deps.warnIf(s.Name(), rec.setCulturalFit(Negative(failureReason(s.Name(), err))))
		deps.Logger.Warn("cultural fit evaluation failed",
			zap.String(logger.FieldStage, s.Name()),
			zap.Error(err),
		)
		return
	}

	switch res.Verdict {
	case ai.FitSelect:
		deps.warnIf(s.Name(), rec.setCulturalFit(Positive("")))
	case ai.FitReject:
		deps.warnIf(s.Name(), rec.setCulturalFit(Negative(reasonOr(res.Reason, "We couldn't establish a cultural fit."))))
	default:
		deps.warnIf(s.Name(), rec.setCulturalFit(Negative("invalid response from collaborator")))
	}

	deps.Logger.Info("cultural fit decided",
		zap.String(logger.FieldStage, s.Name()),
		zap.String("verdict", string(res.Verdict)),
		zap.String("reason", res.Reason),
	)
}
