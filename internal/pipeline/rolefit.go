package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
)

// roleFitStage evaluates the profile against one role's fixed requirements.
// Two instances are registered, one per role track, each with its own classifier.
type roleFitStage struct {
	name       string
	classifier func(Deps) ai.FitClassifier
}

func newTechFitStage() Stage {
	return roleFitStage{
		name:       StageTechFit,
		classifier: func(d Deps) ai.FitClassifier { return d.TechFit },
	}
}

func newSalesFitStage() Stage {
	return roleFitStage{
		name:       StageSalesFit,
		classifier: func(d Deps) ai.FitClassifier { return d.SalesFit },
	}
}

func (s roleFitStage) Name() string { return s.name }

func (s roleFitStage) Run(ctx context.Context, deps Deps, rec *Record) {
	res, err := s.classifier(deps).Evaluate(ctx, rec.Profile)
	if err != nil {
		deps.warnIf(s.name, rec.setRoleFit(Negative(failureReason(s.name, err))))
		deps.Logger.Warn("role fit evaluation failed",
			zap.String(logger.FieldStage, s.name),
			zap.Error(err),
		)
		return
	}

	switch res.Verdict {
	case ai.FitSelect:
		deps.warnIf(s.name, rec.setRoleFit(Positive("")))
	case ai.FitReject:
		deps.warnIf(s.name, rec.setRoleFit(Negative(reasonOr(res.Reason, "Profile does not match the job requirements."))))
	default:
		deps.warnIf(s.name, rec.setRoleFit(Negative("invalid response from collaborator")))
	}

	deps.Logger.Info("role fit decided",
		zap.String(logger.FieldStage, s.name),
		zap.String("verdict", string(res.Verdict)),
		zap.String("reason", res.Reason),
	)
}
