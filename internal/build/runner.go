package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dottxt-ai/blogbuilder/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping on the
// first fatal error. Context cancellation between stages marks the report
// canceled.
func RunStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, stage := range stages {
		select {
		case <-ctx.Done():
			st.Report.AddIssue(IssueCanceled, stage.Name, SeverityError, ctx.Err().Error())
			st.Report.Outcome = OutcomeCanceled
			return fmt.Errorf("stage %s: %w", stage.Name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := stage.Fn(ctx, st)
		dur := time.Since(t0)
		st.Report.StageDurations[stage.Name] = dur

		slog.Debug("Stage completed",
			logfields.Stage(string(stage.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())),
			logfields.Error(err))

		if err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
	}
	return nil
}
