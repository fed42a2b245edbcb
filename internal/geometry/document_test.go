package geometry

import (
	"sync"
	"testing"
)

func TestDocumentAddRemove(t *testing.T) {
	d := NewDocument()
	calls := 0
	remove := d.AddEventListener(EventMouseMove, func(PointerEvent) { calls++ })

	if got := d.Dispatch(EventMouseMove, MouseEvent{}); got != 1 {
		t.Errorf("Dispatch invoked %d handlers, want 1", got)
	}
	if d.ListenerCount(EventMouseMove) != 1 || d.Len() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", d.ListenerCount(EventMouseMove), d.Len())
	}

	remove()
	remove()

	if got := d.Dispatch(EventMouseMove, MouseEvent{}); got != 0 {
		t.Errorf("Dispatch after remove invoked %d handlers", got)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if d.Len() != 0 {
		t.Errorf("Len after remove = %d", d.Len())
	}
}

func TestDocumentRemoveDuringDispatch(t *testing.T) {
	d := NewDocument()
	var second func()
	secondCalled := false

	d.AddEventListener(EventMouseUp, func(PointerEvent) { second() })
	second = d.AddEventListener(EventMouseUp, func(PointerEvent) { secondCalled = true })

	if got := d.Dispatch(EventMouseUp, MouseEvent{}); got != 1 {
		t.Errorf("Dispatch invoked %d handlers, want 1", got)
	}
	if secondCalled {
		t.Error("handler removed mid-dispatch was still invoked")
	}
}

func TestDocumentRemoveKeepsOthers(t *testing.T) {
	d := NewDocument()
	var order []int
	r1 := d.AddEventListener(EventTouchMove, func(PointerEvent) { order = append(order, 1) })
	d.AddEventListener(EventTouchMove, func(PointerEvent) { order = append(order, 2) })
	d.AddEventListener(EventTouchMove, func(PointerEvent) { order = append(order, 3) })

	r1()
	d.Dispatch(EventTouchMove, TouchEvent{})

	if len(order) != 2 || order[0] != 2 || order[1] != 3 {
		t.Errorf("dispatch order = %v, want [2 3]", order)
	}
}

func TestDocumentConcurrent(t *testing.T) {
	d := NewDocument()
	const goroutines = 8
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range iterations {
				remove := d.AddEventListener(EventMouseMove, func(PointerEvent) {})
				d.Dispatch(EventMouseMove, MouseEvent{})
				remove()
			}
		}()
	}
	wg.Wait()

	if d.Len() != 0 {
		t.Errorf("Len after concurrent add/remove = %d", d.Len())
	}
}
