package session

import "testing"

func TestMachineLifecycle(t *testing.T) {
	m := NewMachine()

	if m.Current() != StateIdle {
		t.Fatalf("initial state = %v, want idle", m.Current())
	}
	if !m.CanSend() {
		t.Fatal("idle must accept input")
	}

	if err := m.Submit(); err != nil {
		t.Fatalf("Submit from idle failed: %v", err)
	}
	if m.Current() != StateProcessing {
		t.Errorf("state after submit = %v, want processing", m.Current())
	}

	m.Tick()
	if m.Current() != StateThinking {
		t.Errorf("state after first tick = %v, want thinking", m.Current())
	}
	m.Tick()
	if m.Current() != StateGenerating {
		t.Errorf("state after second tick = %v, want generating", m.Current())
	}

	// Extra ticks do not advance past generating.
	m.Tick()
	if m.Current() != StateGenerating {
		t.Errorf("generating advanced on tick to %v", m.Current())
	}

	m.Respond()
	if m.Current() != StateDone {
		t.Errorf("state after response = %v, want done", m.Current())
	}
	if !m.CanSend() {
		t.Error("done must accept the next input")
	}
}

func TestMachineSingleInFlightSend(t *testing.T) {
	m := NewMachine()

	if err := m.Submit(); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// The send control stays disabled through every in-flight state.
	for i := 0; i < 3; i++ {
		if m.CanSend() {
			t.Errorf("CanSend = true in state %v", m.Current())
		}
		if err := m.Submit(); err != ErrBusy {
			t.Errorf("Submit in state %v returned %v, want ErrBusy", m.Current(), err)
		}
		m.Tick()
	}

	m.Respond()
	if err := m.Submit(); err != nil {
		t.Errorf("submit after done failed: %v", err)
	}
}

func TestMachineResponseBeatsTimers(t *testing.T) {
	// The answer can arrive while still in processing; it wins regardless
	// of which intermediate state was active.
	m := NewMachine()
	m.Submit()
	m.Respond()
	if m.Current() != StateDone {
		t.Errorf("state = %v, want done", m.Current())
	}

	// A timer tick that was already queued must not drag done backwards.
	m.Tick()
	if m.Current() != StateDone {
		t.Errorf("stray tick moved done to %v", m.Current())
	}
}

func TestMachineRespondWhileIdle(t *testing.T) {
	m := NewMachine()
	m.Respond()
	if m.Current() != StateIdle {
		t.Errorf("response in idle moved state to %v", m.Current())
	}
}
