package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai"
	"github.com/dmaslov/applicant-screener/internal/logger"
	"github.com/dmaslov/applicant-screener/internal/slotpool"
)

// busyMessage is the fixed applicant-facing wording used whenever an interview
// loop cannot be assembled, whatever the internal cause.
const busyMessage = "Our interviewers are busy right now and they will try to schedule your interview as soon as possible."

type schedulerStage struct{}

func (schedulerStage) Name() string { return StageScheduler }

func (s schedulerStage) Run(ctx context.Context, deps Deps, rec *Record) {
	required := requiredCategories(rec.Category)
	if required == nil {
		// Reachable only if routing misfired: the scheduler runs after a
		// positive role fit, which requires a category. No silent fallback
		// to a role track the applicant never selected.
		deps.Logger.Warn("scheduler invoked without a role category",
			zap.String(logger.FieldStage, s.Name()),
		)
		deps.warnIf(s.Name(), rec.setSchedule("", busyMessage))
		return
	}

	// Zero availability in any required category is a deterministic fact about
	// the pool; short-circuit without consulting the assembler.
	byCategory := make(map[slotpool.Category][]slotpool.Slot, len(required))
	for _, c := range required {
		slots := deps.Pool.ListByCategory(c)
		if len(slots) == 0 {
			deps.Logger.Info("no slots available for required category",
				zap.String(logger.FieldStage, s.Name()),
				zap.String("category", string(c)),
			)
			deps.warnIf(s.Name(), rec.setSchedule("", busyMessage))
			return
		}
		byCategory[c] = slots
	}

	res, err := deps.Assembler.Assemble(ctx, &ai.ScheduleRequest{
		Role:       string(rec.Category),
		Required:   required,
		ByCategory: byCategory,
		AllSlots:   deps.Pool.ListAll(),
	})
	if err != nil {
		deps.Logger.Warn("schedule assembly failed",
			zap.String(logger.FieldStage, s.Name()),
			zap.Error(err),
		)
		deps.warnIf(s.Name(), rec.setSchedule("", failureReason(s.Name(), err)))
		return
	}

	if res.Unavailable != "" {
		deps.warnIf(s.Name(), rec.setSchedule("", res.Unavailable))
		return
	}

	if !s.bookSlots(deps, res.SlotIDs) {
		// A stale reference means another run booked the slot first; present
		// it to the applicant as plain unavailability.
		deps.warnIf(s.Name(), rec.setSchedule("", busyMessage))
		return
	}

	deps.warnIf(s.Name(), rec.setSchedule(res.Details, ""))
	deps.Logger.Info("interview loop assembled",
		zap.String(logger.FieldStage, s.Name()),
		zap.String("role", string(rec.Category)),
		zap.Int("slots_booked", len(res.SlotIDs)),
	)
}

// bookSlots consumes the selected slots from the pool. It reports false when
// any reference is malformed or no longer present; slots already booked in the
// same call are returned to the pool so they stay available for other runs.
func (s schedulerStage) bookSlots(deps Deps, ids []string) bool {
	booked := make([]slotpool.Slot, 0, len(ids))

	restore := func() {
		for _, slot := range booked {
			deps.Pool.Add(slot.Date, slot.TimeRange, slot.Category)
		}
	}

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			deps.Logger.Warn("assembler returned malformed slot reference",
				zap.String(logger.FieldStage, s.Name()),
				zap.String("slot_id", raw),
				zap.Error(err),
			)
			restore()
			return false
		}

		slot, err := deps.Pool.Book(id)
		if err != nil {
			deps.Logger.Warn("slot no longer available",
				zap.String(logger.FieldStage, s.Name()),
				zap.String("slot_id", raw),
				zap.Error(err),
			)
			restore()
			return false
		}
		booked = append(booked, slot)

		deps.Logger.Debug("slot booked",
			zap.String(logger.FieldStage, s.Name()),
			zap.String("slot_id", slot.ID.String()),
			zap.String("category", string(slot.Category)),
		)
	}
	return true
}

// requiredCategories maps the role track to the fixed interview loop it needs.
// A nil result means no category was ever selected.
func requiredCategories(c Category) []slotpool.Category {
	switch c {
	case CategoryTech:
		return []slotpool.Category{
			slotpool.CategoryTechnicalSkills,
			slotpool.CategorySystemDesignLow,
			slotpool.CategorySystemDesignHigh,
		}
	case CategorySales:
		return []slotpool.Category{
			slotpool.CategoryCommunication,
			slotpool.CategoryCaseStudy,
		}
	default:
		return nil
	}
}
