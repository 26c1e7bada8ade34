package engine

import (
	"context"
	"testing"
)

func TestTrackerNoChecklistNoCall(t *testing.T) {
	fc := newFakeCompleter(`{"points":[]}`)
	e := NewTracker(fc)

	update, err := e.Evaluate(context.Background(), "Client: hello")
	if err != nil || update != nil {
		t.Fatalf("update = %v, err = %v, want nil, nil", update, err)
	}
	if fc.callCount() != 0 {
		t.Fatal("no checklist should mean no completion call")
	}
}

func TestTrackerReplacesChecklistOnEvaluation(t *testing.T) {
	fc := newFakeCompleter(`{"points":[{"text":"Review AAPL concentration","status":"discussed","note":"covered up front"},{"text":"College funding","status":"in_progress","note":""}],"nudge":"College funding still open"}`)
	e := NewTracker(fc)
	e.SetPoints([]string{"Review AAPL concentration", "College funding", "Estate referral"})

	update, err := e.Evaluate(context.Background(), "Advisor: the Apple position is still concentrated")
	if err != nil {
		t.Fatal(err)
	}
	if update.Nudge != "College funding still open" {
		t.Fatalf("nudge = %q", update.Nudge)
	}

	// The stored checklist is what the evaluation returned, not a merge.
	pts := e.Points()
	if len(pts) != 2 {
		t.Fatalf("checklist has %d points after evaluation, want 2", len(pts))
	}
	if pts[0].Status != StatusDiscussed || pts[0].Note != "covered up front" {
		t.Fatalf("first point = %+v", pts[0])
	}
	if pts[1].Status != StatusInProgress {
		t.Fatalf("second point = %+v", pts[1])
	}
}

func TestTrackerMissingStatusDefaultsToPending(t *testing.T) {
	fc := newFakeCompleter(`{"points":[{"text":"College funding"}],"nudge":""}`)
	e := NewTracker(fc)
	e.SetPoints([]string{"College funding"})

	update, err := e.Evaluate(context.Background(), "Client: hello")
	if err != nil {
		t.Fatal(err)
	}
	if update.Points[0].Status != StatusPending {
		t.Fatalf("status = %q, want pending", update.Points[0].Status)
	}
}

func TestTrackerSetPointsResetsToPending(t *testing.T) {
	e := NewTracker(newFakeCompleter())
	e.SetPoints([]string{"A", "B"})

	if !e.HasPoints() {
		t.Fatal("expected checklist")
	}
	for _, p := range e.Points() {
		if p.Status != StatusPending {
			t.Fatalf("point %q status = %q, want pending", p.Text, p.Status)
		}
	}
}

func TestTrackerMalformedCompletionKeepsChecklist(t *testing.T) {
	fc := newFakeCompleter(`garbage`)
	e := NewTracker(fc)
	e.SetPoints([]string{"A"})

	if _, err := e.Evaluate(context.Background(), "Client: hello"); err == nil {
		t.Fatal("expected error for malformed completion")
	}
	if len(e.Points()) != 1 || e.Points()[0].Status != StatusPending {
		t.Fatal("failed evaluation must not disturb the stored checklist")
	}
}
