package stage

import (
	"context"
	"errors"
	"testing"
)

func TestFuncDefaults(t *testing.T) {
	f := Func{Name: "noop"}
	if err := f.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	health := f.HealthCheck(context.Background())
	if !health.Ready || health.Name != "noop" {
		t.Fatalf("unexpected health %#v", health)
	}
}

func TestFuncDelegates(t *testing.T) {
	boom := errors.New("boom")
	f := Func{
		Name:  "fails",
		Run:   func(context.Context) error { return boom },
		Check: func(context.Context) Health { return Unhealthy("fails", "missing input") },
	}
	if err := f.Execute(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if health := f.HealthCheck(context.Background()); health.Ready || health.Detail != "missing input" {
		t.Fatalf("unexpected health %#v", health)
	}
}
