package worker

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeWorker struct {
	name     string
	startErr error
	events   *[]string
}

func (w *fakeWorker) Start(ctx context.Context) error {
	if w.startErr != nil {
		return w.startErr
	}
	*w.events = append(*w.events, "start:"+w.name)
	return nil
}

func (w *fakeWorker) Stop() {
	*w.events = append(*w.events, "stop:"+w.name)
}

func (w *fakeWorker) Name() string {
	return w.name
}

func TestManagerStartsInOrderAndStopsInReverse(t *testing.T) {
	events := []string{}
	m := NewManager(zap.NewNop())
	m.Register(&fakeWorker{name: "a", events: &events})
	m.Register(&fakeWorker{name: "b", events: &events})
	m.Register(&fakeWorker{name: "c", events: &events})

	if got := m.Count(); got != 3 {
		t.Fatalf("expected 3 registered workers, got %d", got)
	}

	if err := m.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if !m.Running() {
		t.Error("expected manager to report running after StartAll")
	}

	m.StopAll()
	if m.Running() {
		t.Error("expected manager to report stopped after StopAll")
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], events[i])
		}
	}
}

func TestManagerRollsBackOnStartFailure(t *testing.T) {
	events := []string{}
	boom := errors.New("boom")

	m := NewManager(zap.NewNop())
	m.Register(&fakeWorker{name: "a", events: &events})
	m.Register(&fakeWorker{name: "b", startErr: boom, events: &events})
	m.Register(&fakeWorker{name: "c", events: &events})

	err := m.StartAll(context.Background())
	if err == nil {
		t.Fatal("expected StartAll to fail")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected error to wrap %v, got %v", boom, err)
	}
	if m.Running() {
		t.Error("expected manager not to report running after failed start")
	}

	want := []string{"start:a", "stop:a"}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("expected events %v, got %v", want, events)
	}
}

func TestManagerRejectsDoubleStart(t *testing.T) {
	events := []string{}
	m := NewManager(zap.NewNop())
	m.Register(&fakeWorker{name: "a", events: &events})

	if err := m.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := m.StartAll(context.Background()); err == nil {
		t.Error("expected second StartAll to fail")
	}

	m.StopAll()
}

func TestManagerStopWithoutStartIsNoop(t *testing.T) {
	events := []string{}
	m := NewManager(zap.NewNop())
	m.Register(&fakeWorker{name: "a", events: &events})

	m.StopAll()

	if len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}
