package scanner

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"
)

func TestTimeoutDuration(t *testing.T) {
	if got := timeoutDuration(2.0); got != 2*time.Second {
		t.Errorf("got %v, want 2s", got)
	}
	if got := timeoutDuration(0.5); got != 500*time.Millisecond {
		t.Errorf("got %v, want 500ms", got)
	}
}

func TestProbePortOpenUnverifiedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	s := New(Config{Timeout: 1.0, VerifyModbus: false, LookupMAC: false}, nil)
	result := s.probePort(context.Background(), "127.0.0.1", port)
	if result == nil {
		t.Fatal("expected a result for an open port")
	}
	if result.DeviceType != DeviceTypeModbusUnverified {
		t.Errorf("got %s, want modbus_unverified", result.DeviceType)
	}
}

func TestProbePortClosedPortReturnsNil(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	ln.Close() // free the port, nothing is listening now

	s := New(Config{Timeout: 1.0, VerifyModbus: false, LookupMAC: false}, nil)
	result := s.probePort(context.Background(), "127.0.0.1", port)
	if result != nil {
		t.Errorf("expected nil for a closed port, got %+v", result)
	}
}

func TestResultIsVerifiedAndIsDongleCandidate(t *testing.T) {
	verified := Result{DeviceType: DeviceTypeModbusVerified}
	if !verified.IsVerified() {
		t.Error("expected IsVerified true")
	}
	dongle := Result{DeviceType: DeviceTypeDongleCandidate}
	if !dongle.IsDongleCandidate() {
		t.Error("expected IsDongleCandidate true")
	}
	if dongle.IsVerified() {
		t.Error("dongle candidate should not report IsVerified")
	}
}

func TestScanClosedPortClosesChannel(t *testing.T) {
	s := New(Config{IPRange: "192.168.100.1", Ports: []int{59999}, Timeout: 0.2, Concurrency: 4}, nil)
	results, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for range results {
		count++
	}
	if count != 0 {
		t.Errorf("expected no results against a closed port, got %d", count)
	}
}

func TestScanRejectsInvalidRange(t *testing.T) {
	s := New(Config{IPRange: "not-an-ip"}, nil)
	if _, err := s.Scan(context.Background()); err == nil {
		t.Fatal("expected a range-parse error")
	}
}

func TestScanReportsProgress(t *testing.T) {
	var lastProgress Progress
	progress := func(p Progress) { lastProgress = p }

	s := New(Config{IPRange: "192.168.100.1", Ports: []int{59998}, Timeout: 0.2, Concurrency: 4}, progress)
	results, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range results {
	}
	if lastProgress.TotalHosts != 1 || lastProgress.Scanned != 1 {
		t.Errorf("expected final progress update, got %+v", lastProgress)
	}
}

func TestScanCancel(t *testing.T) {
	s := New(Config{IPRange: "192.168.1.0/24", Ports: []int{59997}, Timeout: 0.2, Concurrency: 8}, nil)
	s.Cancel()
	results, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range results {
	}
}
