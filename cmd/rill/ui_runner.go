package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rill/internal/batch"
	"rill/internal/ui"
)

type diagnoseOutcome struct {
	results []batch.Result
	metrics batch.Metrics
	err     error
}

// runDiagnoseWithUI drives Diagnose in the background while a Bubble Tea
// progress model consumes its events; Diagnose closes the channel when
// the run ends, which quits the model.
func runDiagnoseWithUI(ctx context.Context, title string, files []string, opts batch.Options) ([]batch.Result, batch.Metrics, error) {
	events := make(chan batch.Event, 256)
	opts.Events = events
	outcomeCh := make(chan diagnoseOutcome, 1)

	go func() {
		results, metrics, err := batch.Diagnose(ctx, files, opts)
		outcomeCh <- diagnoseOutcome{results: results, metrics: metrics, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.metrics, uiErr
	}
	return outcome.results, outcome.metrics, outcome.err
}
