package workflow_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"vtripper/internal/config"
	"vtripper/internal/logging"
	"vtripper/internal/services"
	"vtripper/internal/stage"
	"vtripper/internal/testsupport"
	"vtripper/internal/workflow"
)

type recorder struct {
	ran      []workflow.Stage
	stages   []string
	requests []string
}

func (r *recorder) handler(s workflow.Stage, err error) stage.Handler {
	return stage.Func{
		Name: s.String(),
		Run: func(ctx context.Context) error {
			r.ran = append(r.ran, s)
			name, _ := services.StageFromContext(ctx)
			r.stages = append(r.stages, name)
			id, _ := services.RunIDFromContext(ctx)
			r.requests = append(r.requests, id)
			return err
		},
	}
}

func newStubManager(t *testing.T, rec *recorder, failAt workflow.Stage, failErr error) *workflow.Manager {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	opts := make([]workflow.ManagerOption, 0, len(workflow.Stages()))
	for _, s := range workflow.Stages() {
		var err error
		if s == failAt {
			err = failErr
		}
		opts = append(opts, workflow.WithStageHandler(s, rec.handler(s, err)))
	}
	mgr, err := workflow.NewManager(cfg, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestRunExecutesStagesInOrder(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)

	summary, err := mgr.Run(context.Background(), workflow.DefaultRunOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(rec.ran, workflow.Stages()) {
		t.Fatalf("ran %v, want %v", rec.ran, workflow.Stages())
	}
	if !slices.Equal(summary.Completed, workflow.Stages()) {
		t.Fatalf("completed %v", summary.Completed)
	}
	for i, s := range rec.ran {
		if rec.stages[i] != s.String() {
			t.Fatalf("stage context = %q, want %q", rec.stages[i], s)
		}
		if rec.requests[i] == "" || rec.requests[i] != summary.RunID {
			t.Fatalf("request id = %q, want run id %q", rec.requests[i], summary.RunID)
		}
	}
}

func TestRunHonorsStartAndStop(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)

	_, err := mgr.Run(context.Background(), workflow.RunOptions{From: workflow.FormatProject, To: workflow.CopyDLLs})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []workflow.Stage{workflow.FormatProject, workflow.EditManifest, workflow.CopyDLLs}
	if !slices.Equal(rec.ran, want) {
		t.Fatalf("ran %v, want %v", rec.ran, want)
	}
}

func TestRunStartingAtLastStageRunsOnce(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)

	if _, err := mgr.Run(context.Background(), workflow.RunOptions{From: workflow.FixScripts, To: workflow.FixScripts}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(rec.ran, []workflow.Stage{workflow.FixScripts}) {
		t.Fatalf("ran %v", rec.ran)
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	rec := &recorder{}
	boom := services.Wrap(services.ErrValidation, "format-project", "flatten", "missing", nil)
	mgr := newStubManager(t, rec, workflow.FormatProject, boom)

	summary, err := mgr.Run(context.Background(), workflow.DefaultRunOptions())
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker to survive wrapping, got %v", err)
	}
	want := []workflow.Stage{workflow.PreClean, workflow.RipProject, workflow.FormatProject}
	if !slices.Equal(rec.ran, want) {
		t.Fatalf("ran %v, want %v", rec.ran, want)
	}
	if len(summary.Completed) != 2 {
		t.Fatalf("completed %v", summary.Completed)
	}
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)

	summary, err := mgr.Run(context.Background(), workflow.RunOptions{From: workflow.RipProject, To: workflow.Last(), DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.ran) != 0 {
		t.Fatalf("dry run executed %v", rec.ran)
	}
	if len(summary.Planned) != 5 || !summary.DryRun {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mgr.Run(ctx, workflow.DefaultRunOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.ran) != 0 {
		t.Fatalf("cancelled run executed %v", rec.ran)
	}
}

func TestRunRejectsReversedWindow(t *testing.T) {
	rec := &recorder{}
	mgr := newStubManager(t, rec, -1, nil)

	if _, err := mgr.Run(context.Background(), workflow.RunOptions{From: workflow.FixScripts, To: workflow.PreClean}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPreflightBlocksRunBeforeAnyStage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	rec := &recorder{}
	mgr, err := workflow.NewManager(cfg, logging.NewNop(),
		workflow.WithStageHandler(workflow.PreClean, rec.handler(workflow.PreClean, nil)),
	)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	_, err = mgr.Run(context.Background(), workflow.DefaultRunOptions())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(rec.ran) != 0 {
		t.Fatalf("preflight failure should stop before any stage, ran %v", rec.ran)
	}
}

func TestHealthCheckReportsEveryStage(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithGameInstall(),
		testsupport.WithSPlugins(map[string]string{"Loader.cs": "x"}),
		testsupport.WithDecompilerStub(0),
	)
	mgr, err := workflow.NewManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	health := mgr.HealthCheck(context.Background())
	if len(health) != len(workflow.Stages()) {
		t.Fatalf("expected %d health records, got %d", len(workflow.Stages()), len(health))
	}
	for i, h := range health {
		if h.Name != workflow.Stages()[i].String() {
			t.Fatalf("health[%d] name = %q", i, h.Name)
		}
		if !h.Ready {
			t.Fatalf("%s not ready: %s", h.Name, h.Detail)
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.StartStage = "FormatProject"
	cfg.Pipeline.StopStage = "copy-dlls"

	opts, err := workflow.OptionsFromConfig(&cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	if opts.From != workflow.FormatProject || opts.To != workflow.CopyDLLs {
		t.Fatalf("unexpected options %+v", opts)
	}

	cfg.Pipeline.StopStage = ""
	opts, err = workflow.OptionsFromConfig(&cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	if opts.To != workflow.Last() {
		t.Fatalf("expected default stop stage, got %s", opts.To)
	}

	cfg.Pipeline.StartStage = "bogus"
	if _, err := workflow.OptionsFromConfig(&cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
