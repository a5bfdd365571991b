// Package pipeline implements the screening workflow: a fixed directed graph of
// decision stages threaded over a single mutable application record. Each stage
// contains its own failures, routing is a pure function of the record, and
// every path converges on the notifier before the run terminates.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/logger"
)

// routeFunc selects the next stage from the current record state. Routing is
// pure: the same record snapshot always yields the same successor.
type routeFunc func(*Record) string

// routes is the full routing table. Every registered stage has an entry and no
// entry dangles, so the run always reaches the notifier and then terminates.
var routes = map[string]routeFunc{
	StageEligibility: routeAfterEligibility,
	StageTechFit:     routeAfterRoleFit,
	StageSalesFit:    routeAfterRoleFit,
	StageCulturalFit: routeAfterCulturalFit,
	StageScheduler:   func(*Record) string { return StageNotifier },
	StageNotifier:    func(*Record) string { return stageEnd },
}

func routeAfterEligibility(rec *Record) string {
	if rec.Eligibility.Status != StatusPositive {
		return StageNotifier
	}
	switch rec.Category {
	case CategoryTech:
		return StageTechFit
	case CategorySales:
		return StageSalesFit
	}
	// Positive outcome without a recognized category: fail-safe default.
	return StageNotifier
}

func routeAfterRoleFit(rec *Record) string {
	if rec.RoleFit.Status == StatusPositive {
		return StageCulturalFit
	}
	return StageNotifier
}

func routeAfterCulturalFit(rec *Record) string {
	if rec.CulturalFit.Status == StatusPositive {
		return StageScheduler
	}
	return StageNotifier
}

// Pipeline drives one application record through the stage graph.
type Pipeline struct {
	deps   Deps
	stages map[string]Stage
}

// New builds the pipeline with its stage set and shared dependencies.
func New(deps Deps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	stages := []Stage{
		eligibilityStage{},
		newTechFitStage(),
		newSalesFitStage(),
		culturalFitStage{},
		schedulerStage{},
		notifierStage{},
	}

	byName := make(map[string]Stage, len(stages))
	for _, s := range stages {
		byName[s.Name()] = s
	}

	return &Pipeline{deps: deps, stages: byName}
}

// Run executes the graph from the eligibility stage until the terminal edge
// after the notifier, and returns the final record. Stages execute strictly
// sequentially, each at most once; routing is applied only after the stage's
// result is recorded. Run itself has no failure path.
func (p *Pipeline) Run(ctx context.Context, rec *Record) *Record {
	visited := make(map[string]bool, len(p.stages))
	current := StageEligibility

	for current != stageEnd {
		if visited[current] {
			p.deps.Logger.Warn("stage visited twice, terminating run",
				zap.String(logger.FieldStage, current),
			)
			break
		}
		visited[current] = true

		stage, ok := p.stages[current]
		if !ok {
			p.deps.Logger.Warn("unknown stage, routing to notifier",
				zap.String(logger.FieldStage, current),
			)
			current = StageNotifier
			continue
		}

		p.deps.Logger.Debug("running stage", zap.String(logger.FieldStage, current))
		stage.Run(ctx, p.deps, rec)

		route, ok := routes[current]
		if !ok {
			current = StageNotifier
			continue
		}
		current = route(rec)
	}

	return rec
}
