package timeline

import (
	"reflect"
	"testing"
	"time"
)

func TestAdvanceRunsInDueOrder(t *testing.T) {
	q := New()
	var got []string
	q.Schedule("", 30*time.Millisecond, func() { got = append(got, "c") })
	q.Schedule("", 10*time.Millisecond, func() { got = append(got, "a") })
	q.Schedule("", 10*time.Millisecond, func() { got = append(got, "b") })

	if ran := q.Advance(5 * time.Millisecond); ran != 0 {
		t.Fatalf("ran %d effects before any was due", ran)
	}
	q.Advance(5 * time.Millisecond)
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after 10ms got %v, want %v", got, want)
	}
	q.Advance(20 * time.Millisecond)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after 30ms got %v, want %v", got, want)
	}
	if q.Len() != 0 {
		t.Fatalf("Len = %d, want 0", q.Len())
	}
}

func TestScheduleSameKeyReplaces(t *testing.T) {
	q := New()
	calls := 0
	q.Schedule("shield", 100*time.Millisecond, func() { calls++ })
	q.Advance(80 * time.Millisecond)
	q.Schedule("shield", 100*time.Millisecond, func() { calls += 10 })

	q.Advance(30 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("replaced effect ran: calls = %d", calls)
	}
	if !q.Pending("shield") {
		t.Fatal("refreshed effect should still be pending")
	}
	q.Advance(70 * time.Millisecond)
	if calls != 10 {
		t.Fatalf("calls = %d, want 10", calls)
	}
	if q.Pending("shield") {
		t.Fatal("effect should no longer be pending after running")
	}
}

func TestCancelAndClear(t *testing.T) {
	q := New()
	ran := false
	q.Schedule("flash", time.Millisecond, func() { ran = true })
	if !q.Cancel("flash") {
		t.Fatal("Cancel should report a pending effect")
	}
	if q.Cancel("flash") {
		t.Fatal("second Cancel should report nothing pending")
	}

	q.Schedule("a", time.Millisecond, func() { ran = true })
	q.Schedule("", time.Millisecond, func() { ran = true })
	q.Clear()
	q.Advance(time.Second)
	if ran {
		t.Fatal("cleared effects must not run")
	}
	if q.Pending("a") {
		t.Fatal("Clear should forget keys")
	}
}

func TestEffectCanScheduleFollowUp(t *testing.T) {
	q := New()
	var got []int
	q.Schedule("", 0, func() {
		got = append(got, 1)
		q.Schedule("", 0, func() { got = append(got, 2) })
	})
	q.Advance(0)
	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNowTracksAdvances(t *testing.T) {
	q := New()
	q.Advance(16 * time.Millisecond)
	q.Advance(-5 * time.Millisecond)
	if q.Now() != 16*time.Millisecond {
		t.Fatalf("Now = %v, want 16ms", q.Now())
	}
}
