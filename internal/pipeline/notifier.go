package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
)

type notifierStage struct{}

func (notifierStage) Name() string { return StageNotifier }

func (s notifierStage) Run(ctx context.Context, deps Deps, rec *Record) {
	verdict, reason := finalVerdict(rec)

	message, err := deps.Composer.Compose(ctx, verdict, reason, rec.Profile)
	if err != nil {
		deps.Logger.Warn("notification composer failed, using plain fallback",
			zap.String(logger.FieldStage, s.Name()),
			zap.Error(err),
		)
		message = fallbackMessage(verdict, reason)
	}

	deps.warnIf(s.Name(), rec.setNotification(message))
	deps.Logger.Info("notification composed",
		zap.String(logger.FieldStage, s.Name()),
		zap.String("verdict", string(verdict)),
	)
}

// finalVerdict folds the per-stage outcomes into the single decision presented
// to the applicant. Rejections earlier in the flow take precedence; a run that
// reached scheduling is a selection, with either the interview details or the
// unavailability explanation as the reason.
func finalVerdict(rec *Record) (ai.Verdict, string) {
	switch {
	case rec.Eligibility.Status == StatusNegative:
		return ai.VerdictReject, reasonOr(rec.Eligibility.Reason, "Application not suitable at this time.")
	case rec.RoleFit.Status == StatusNegative:
		return ai.VerdictReject, reasonOr(rec.RoleFit.Reason, "Profile does not match the job requirements.")
	case rec.CulturalFit.Status == StatusNegative:
		return ai.VerdictReject, reasonOr(rec.CulturalFit.Reason, "We couldn't establish a cultural fit.")
	}

	if rec.InterviewDetails != "" {
		return ai.VerdictSelect, rec.InterviewDetails
	}
	return ai.VerdictSelect, reasonOr(rec.Unavailable, busyMessage)
}

// fallbackMessage is the locally composed notification used when the composer
// itself is unreachable. Plain, but the run still ends with a message.
func fallbackMessage(verdict ai.Verdict, reason string) string {
	if verdict == ai.VerdictReject {
		return fmt.Sprintf(
			"Subject: Your Application\n\nDear Candidate,\n\nThank you for your application. Unfortunately we will not be moving forward at this time. %s\n\nBest regards,\nHR Team",
			reason,
		)
	}
	return fmt.Sprintf(
		"Subject: Your Application\n\nDear Candidate,\n\nCongratulations, you have been selected. %s\n\nBest regards,\nHR Team",
		reason,
	)
}
