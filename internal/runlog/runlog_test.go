package runlog

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateRunAssignsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "discrete", "fast", 42)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if run.ID == "" {
		t.Error("run ID is empty")
	}
	if run.Engine != "discrete" || run.Preset != "fast" || run.Seed != 42 {
		t.Errorf("run = %+v, want discrete/fast/42", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("run created_at is zero")
	}
}

func TestSampleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "discrete", "fast", 0)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	want := []Sample{
		{Tick: 0, Coherence: 0.25, Entropy: 0.5, Margin: -0.3, ActiveCount: 4, DominantBin: 12, PeakPrime: 7, DominantAxis: 3},
		{Tick: 1, Coherence: 0.75, Entropy: 0.4, Margin: 0.2, ActiveCount: 5, DominantBin: 13, PeakPrime: 11, DominantAxis: 3, Fired: true},
	}
	for _, sample := range want {
		if err := s.AppendSample(ctx, run.ID, sample); err != nil {
			t.Fatalf("AppendSample(%d): %v", sample.Tick, err)
		}
	}

	got, err := s.Samples(ctx, run.ID)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSamplesEmptyRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "continuous", "", 0)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := s.Samples(ctx, run.ID)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d samples for empty run, want 0", len(got))
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx, "discrete", "fast", 1)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	second, err := s.CreateRun(ctx, "continuous", "", 2)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	ids := map[string]bool{runs[0].ID: true, runs[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("listed runs %v missing created runs", ids)
	}
}

func TestGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRun(ctx, "discrete", "precise", 9)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := s.GetRun(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ID != created.ID || got.Preset != "precise" || got.Seed != 9 {
		t.Errorf("GetRun = %+v, want %+v", got, created)
	}

	if _, err := s.GetRun(ctx, "no-such-run"); err == nil {
		t.Error("expected error for unknown run ID")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	run, err := s1.CreateRun(context.Background(), "discrete", "fast", 0)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("run lost across reopen")
	}
}
