package loan

import (
	"errors"
	"fmt"

	"github.com/loanpath/backend/internal/model"
)

// ErrUnknownStage indicates a tracker entry references a stage outside
// the recognized pipeline. Treated as a data-integrity problem from the
// persistence collaborator rather than silently rendering the entry as
// "before all known stages".
var ErrUnknownStage = errors.New("unknown application stage")

var stageOrder = []model.ApplicationStage{
	model.StageSubmitted,
	model.StageVerification,
	model.StageReview,
	model.StageApproval,
	model.StageDisbursement,
	model.StageCompleted,
}

var stageLabels = map[model.ApplicationStage]string{
	model.StageSubmitted:    "Submitted",
	model.StageVerification: "Verification",
	model.StageReview:       "Review",
	model.StageApproval:     "Approval",
	model.StageDisbursement: "Disbursement",
	model.StageCompleted:    "Completed",
}

// statusOrder is the pipeline-severity order used when sorting by status.
var statusOrder = []model.ApplicationStatus{
	model.StatusPending,
	model.StatusInReview,
	model.StatusApproved,
	model.StatusRejected,
	model.StatusDisbursed,
	model.StatusCompleted,
}

// defaultStatusForStage maps each stage to the status an application
// normally carries when it reaches that stage. Rejection is not derivable
// from stage and must be set explicitly.
var defaultStatusForStage = map[model.ApplicationStage]model.ApplicationStatus{
	model.StageSubmitted:    model.StatusPending,
	model.StageVerification: model.StatusInReview,
	model.StageReview:       model.StatusInReview,
	model.StageApproval:     model.StatusApproved,
	model.StageDisbursement: model.StatusDisbursed,
	model.StageCompleted:    model.StatusCompleted,
}

// Stages returns the pipeline stages in order.
func Stages() []model.ApplicationStage {
	out := make([]model.ApplicationStage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// StageIndex returns the position of a stage in the pipeline (0..5).
func StageIndex(stage model.ApplicationStage) (int, error) {
	for i, s := range stageOrder {
		if s == stage {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
}

// StageLabel returns the display label for a stage, or the raw key when
// the stage is unrecognized.
func StageLabel(stage model.ApplicationStage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return string(stage)
}

// IsStageComplete reports whether the given stage is at or before the
// entry's current stage. Used to render checkmarks up to and including
// the active stage.
func IsStageComplete(entry model.TrackerEntry, stage model.ApplicationStage) (bool, error) {
	idx, err := StageIndex(stage)
	if err != nil {
		return false, err
	}
	cur, err := StageIndex(entry.CurrentStage)
	if err != nil {
		return false, err
	}
	return idx <= cur, nil
}

// IsCurrentStage reports whether the given stage is the entry's active
// stage.
func IsCurrentStage(entry model.TrackerEntry, stage model.ApplicationStage) (bool, error) {
	idx, err := StageIndex(stage)
	if err != nil {
		return false, err
	}
	cur, err := StageIndex(entry.CurrentStage)
	if err != nil {
		return false, err
	}
	return idx == cur, nil
}

// StageProgress derives the display percentage for a stage from its
// pipeline position: submitted is 0, completed is 100.
func StageProgress(stage model.ApplicationStage) (int, error) {
	idx, err := StageIndex(stage)
	if err != nil {
		return 0, err
	}
	return idx * 100 / (len(stageOrder) - 1), nil
}

// Progression projects an entry onto the full pipeline, flagging each
// stage as complete and/or current. The next-step hint surfaces only at
// the active stage.
func Progression(entry model.TrackerEntry) ([]model.StageStep, error) {
	cur, err := StageIndex(entry.CurrentStage)
	if err != nil {
		return nil, err
	}

	steps := make([]model.StageStep, 0, len(stageOrder))
	for i, stage := range stageOrder {
		step := model.StageStep{
			Stage:    stage,
			Label:    stageLabels[stage],
			Complete: i <= cur,
			Current:  i == cur,
		}
		if step.Current {
			step.NextStep = entry.NextStep
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// KnownStatus reports whether the status is one of the six recognized
// classification tags.
func KnownStatus(status model.ApplicationStatus) bool {
	return statusRank(status) >= 0
}

// DefaultStatusForStage returns the status an application normally
// carries at the given stage.
func DefaultStatusForStage(stage model.ApplicationStage) (model.ApplicationStatus, error) {
	if _, err := StageIndex(stage); err != nil {
		return "", err
	}
	return defaultStatusForStage[stage], nil
}

// statusRank returns the severity position of a status, or -1 when the
// status is unrecognized (sorting it before all known statuses).
func statusRank(status model.ApplicationStatus) int {
	for i, s := range statusOrder {
		if s == status {
			return i
		}
	}
	return -1
}
