package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunStages_RecordsDurationsInOrder(t *testing.T) {
	st := &State{Report: NewReport("test")}
	var order []StageName

	stages := []StageDef{
		{Name: "one", Fn: func(context.Context, *State) error { order = append(order, "one"); return nil }},
		{Name: "two", Fn: func(context.Context, *State) error { order = append(order, "two"); return nil }},
	}

	require.NoError(t, RunStages(context.Background(), st, stages))
	require.Equal(t, []StageName{"one", "two"}, order)
	require.Contains(t, st.Report.StageDurations, StageName("one"))
	require.Contains(t, st.Report.StageDurations, StageName("two"))
}

func TestRunStages_StopsOnFirstError(t *testing.T) {
	st := &State{Report: NewReport("test")}
	boom := errors.New("boom")
	ran := false

	stages := []StageDef{
		{Name: "fails", Fn: func(context.Context, *State) error { return boom }},
		{Name: "never", Fn: func(context.Context, *State) error { ran = true; return nil }},
	}

	err := RunStages(context.Background(), st, stages)
	require.Error(t, err)
	require.True(t, errors.Is(err, boom))
	require.False(t, ran)
}

func TestRunStages_CanceledBeforeStage(t *testing.T) {
	st := &State{Report: NewReport("test")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stages := []StageDef{
		{Name: "skipped", Fn: func(context.Context, *State) error {
			t.Fatal("stage must not run after cancellation")
			return nil
		}},
	}

	err := RunStages(ctx, st, stages)
	require.Error(t, err)
	require.Equal(t, OutcomeCanceled, st.Report.Outcome)
}
