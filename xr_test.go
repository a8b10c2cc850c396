package immerse

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimulatedXRSupport(t *testing.T) {
	xr := NewSimulatedXR(ModeVR)
	ctx := context.Background()
	if ok, err := xr.IsSessionSupported(ctx, ModeVR); !ok || err != nil {
		t.Errorf("vr supported = %v, %v", ok, err)
	}
	if ok, err := xr.IsSessionSupported(ctx, ModeAR); ok || err != nil {
		t.Errorf("ar supported = %v, %v", ok, err)
	}
}

func TestSimulatedXRRequestSession(t *testing.T) {
	xr := NewSimulatedXR(ModeAR)
	s, err := xr.RequestSession(context.Background(), ModeAR)
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeAR {
		t.Errorf("Mode = %s, want ar", s.Mode())
	}
	if len(xr.Sessions()) != 1 {
		t.Errorf("Sessions = %d, want 1", len(xr.Sessions()))
	}

	_, err = xr.RequestSession(context.Background(), ModeVR)
	if !errors.Is(err, ErrUnsupportedSession) {
		t.Errorf("unsupported err = %v", err)
	}
}

func TestSimulatedXRHonorsContext(t *testing.T) {
	xr := NewSimulatedXR(ModeVR)
	xr.Latency = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := xr.RequestSession(ctx, ModeVR); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestSimulatedSessionEnd(t *testing.T) {
	xr := NewSimulatedXR(ModeVR)
	s, _ := xr.RequestSession(context.Background(), ModeVR)
	sess := xr.Sessions()[0]
	if sess.Ended() {
		t.Fatal("new session already ended")
	}
	if err := s.End(); err != nil {
		t.Fatal(err)
	}
	if err := s.End(); err != nil {
		t.Errorf("second End = %v", err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done not closed after End")
	}
	if !sess.Ended() {
		t.Error("Ended = false after End")
	}
}
