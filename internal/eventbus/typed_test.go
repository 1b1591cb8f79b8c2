package eventbus

import "testing"

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[string]()
	ch := bus.Subscribe()
	bus.Publish("c1")
	v := <-ch
	if v != "c1" {
		t.Fatalf("expected c1 got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestTypedBusFanOut(t *testing.T) {
	bus := NewTyped[busEvent]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Publish(busEvent{ID: "c1"})
	if ev := <-ch1; ev.ID != "c1" {
		t.Errorf("ch1 got %v", ev)
	}
	if ev := <-ch2; ev.ID != "c1" {
		t.Errorf("ch2 got %v", ev)
	}
	bus.Close()
}

func TestTypedBusSlowSubscriberDropsEvents(t *testing.T) {
	bus := NewTyped[int]()
	ch := bus.Subscribe()
	for i := 0; i < 100; i++ {
		bus.Publish(i)
	}
	drained := 0
	for {
		select {
		case <-ch:
			drained++
		default:
			if drained == 0 || drained > 16 {
				t.Fatalf("drained %d events, want between 1 and the buffer size", drained)
			}
			return
		}
	}
}

func TestTypedBusClose(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestTypedBusPublishAfterClose(t *testing.T) {
	bus := NewTyped[int]()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Publish after Close: %v", r)
		}
	}()
	bus.Publish(1)
}

func TestTypedBusUnsubscribeAfterClose(t *testing.T) {
	bus := NewTyped[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
