package generator

import (
	"context"
	"errors"

	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
)

// Stage names a pipeline step.
type Stage string

const (
	StageResolve    Stage = "resolve"
	StageCacheCheck Stage = "cache_check"
	StageRender     Stage = "render"
	StageEmit       Stage = "emit"
	StagePersist    Stage = "persist"
)

// Stages returns the stages in execution order.
func Stages() []Stage {
	return []Stage{StageResolve, StageCacheCheck, StageRender, StageEmit, StagePersist}
}

// StageResult classifies how a stage ended.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultSkipped  StageResult = "skipped"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func (r StageResult) label() metrics.ResultLabel {
	switch r {
	case StageResultSkipped:
		return metrics.ResultSkipped
	case StageResultWarning:
		return metrics.ResultWarning
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}

// Outcome is the terminal state of a generation.
type Outcome string

const (
	OutcomeHit       Outcome = "hit"
	OutcomeGenerated Outcome = "generated"
	OutcomeFailed    Outcome = "failed"
)

func resultFor(err error) StageResult {
	switch {
	case err == nil:
		return StageResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StageResultCanceled
	default:
		return StageResultFatal
	}
}
