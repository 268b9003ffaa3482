package telemetry

import "testing"

func TestRecorder_RoundTrip(t *testing.T) {
	r, err := Open(":memory:", "holdout", 42)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if r.RunID() == 0 {
		t.Fatal("run row should have an id")
	}

	for i := 0; i < 10; i++ {
		if err := r.RecordEvent(i, "production", "complete", "Wisp", 0); err != nil {
			t.Fatalf("record event %d: %v", i, err)
		}
	}
	if err := r.RecordSnapshot(5, 1, "Wisp", "player", 10, 20, 140); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}
	if err := r.Close(60.0); err != nil {
		t.Fatalf("close: %v", err)
	}

	n, err := r.EventCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 10 {
		t.Fatalf("persisted %d events, want 10", n)
	}

	var run Run
	if err := r.db.First(&run, r.RunID()).Error; err != nil {
		t.Fatalf("load run row: %v", err)
	}
	if run.Scenario != "holdout" || run.SimTime != 60.0 {
		t.Fatalf("run row wrong: %+v", run)
	}
}

func TestRecorder_BatchFlush(t *testing.T) {
	r, err := Open(":memory:", "stress", 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Cross the batch threshold to force a mid-run flush.
	for i := 0; i < batchSize+10; i++ {
		if err := r.RecordEvent(i, "world", "spawn", "Spearling", float64(i)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if err := r.Close(1.0); err != nil {
		t.Fatalf("close: %v", err)
	}
	n, err := r.EventCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if int(n) != batchSize+10 {
		t.Fatalf("persisted %d events, want %d", n, batchSize+10)
	}
}
