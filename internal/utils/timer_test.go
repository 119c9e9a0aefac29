package utils

import (
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	timer := NewTimer()
	if timer.Duration() != 0 {
		t.Errorf("Duration() before Stop = %v, want 0", timer.Duration())
	}

	time.Sleep(5 * time.Millisecond)
	first := timer.Stop()
	if first <= 0 || timer.Duration() != first {
		t.Errorf("Stop() = %v, Duration() = %v", first, timer.Duration())
	}

	timer.Start()
	if timer.Duration() != 0 {
		t.Errorf("Duration() after Start = %v, want 0", timer.Duration())
	}
	if second := timer.Stop(); second >= first {
		t.Errorf("restarted measurement %v should be shorter than %v", second, first)
	}
}
