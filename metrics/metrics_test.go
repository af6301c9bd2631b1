package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/MichaelAJay/go-canonical/metrics"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := metrics.NewMetrics()

	m.RecordEncode(10 * time.Millisecond)
	m.RecordEncode(30 * time.Millisecond)
	m.RecordError()

	snapshot := m.GetMetrics()
	if snapshot.Encodes != 2 {
		t.Errorf("Expected 2 encodes, got %d", snapshot.Encodes)
	}
	if snapshot.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", snapshot.Errors)
	}
	if snapshot.EncodeLatency != 20*time.Millisecond {
		t.Errorf("Expected 20ms average latency, got %v", snapshot.EncodeLatency)
	}
	want := 1.0 / 3.0
	if snapshot.ErrorRate != want {
		t.Errorf("Expected error rate %v, got %v", want, snapshot.ErrorRate)
	}
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	snapshot := metrics.NewMetrics().GetMetrics()
	if snapshot.Encodes != 0 || snapshot.Errors != 0 || snapshot.ErrorRate != 0 {
		t.Errorf("Expected zeroed snapshot, got %+v", snapshot)
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m := metrics.NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordEncode(time.Millisecond)
				m.RecordError()
			}
		}()
	}
	wg.Wait()

	snapshot := m.GetMetrics()
	if snapshot.Encodes != 800 {
		t.Errorf("Expected 800 encodes, got %d", snapshot.Encodes)
	}
	if snapshot.Errors != 800 {
		t.Errorf("Expected 800 errors, got %d", snapshot.Errors)
	}
}
