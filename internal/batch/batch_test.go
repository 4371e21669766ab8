package batch

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRun_OrderStable(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}

	results := Run(names, 3, func(name string) Result {
		return Result{Name: name, Outputs: []string{name + "_m"}}
	}, nil)

	if len(results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(results))
	}
	for i, r := range results {
		if r.Name != names[i] {
			t.Errorf("result %d: expected %q, got %q", i, names[i], r.Name)
		}
	}
}

func TestRun_ErrorsDoNotAbort(t *testing.T) {
	names := []string{"ok1", "bad", "ok2"}
	failure := errors.New("parse failure")

	results := Run(names, 1, func(name string) Result {
		if name == "bad" {
			return Result{Name: name, Err: failure}
		}
		return Result{Name: name}
	}, nil)

	if got := Succeeded(results); got != 2 {
		t.Errorf("expected 2 successes, got %d", got)
	}
	if !errors.Is(results[1].Err, failure) {
		t.Errorf("expected failure on second input, got %v", results[1].Err)
	}
}

func TestRun_SequentialByDefault(t *testing.T) {
	var mu sync.Mutex
	var order []string

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("f%02d", i)
	}

	Run(names, 0, func(name string) Result {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
		return Result{Name: name}
	}, nil)

	for i, name := range order {
		if name != names[i] {
			t.Fatalf("expected sequential order with one worker, got %v", order)
		}
	}
}

func TestRun_Empty(t *testing.T) {
	results := Run(nil, 4, func(name string) Result {
		t.Error("fn should not be called for empty input")
		return Result{}
	}, nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSucceeded(t *testing.T) {
	results := []Result{
		{Name: "a"},
		{Name: "b", Err: errors.New("x")},
		{Name: "c", Warnings: []string{"degraded"}},
	}
	if got := Succeeded(results); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}
