package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDurationSeconds(t *testing.T) {
	result := Result{Format: Format{Duration: "123.45"}}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	result = Result{Format: Format{Duration: "bad"}}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected 0 for invalid duration, got %v", result.DurationSeconds())
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(8.504999); got != 8.5 {
		t.Fatalf("Round2(8.504999) = %v", got)
	}
	if got := Round2(1.005); got != 1.01 && got != 1.0 {
		// Binary float representation decides the half-way direction; either
		// neighbor is acceptable, anything else is a rounding bug.
		t.Fatalf("Round2(1.005) = %v", got)
	}
}

func TestAudioDurationFallsBackToMP3Estimate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	// 16000 bytes at 128 kbps = 1 second.
	if err := os.WriteFile(path, make([]byte, 16000), 0o644); err != nil {
		t.Fatalf("write mp3 fixture: %v", err)
	}

	duration, err := AudioDuration(context.Background(), "ffprobe-not-installed", path)
	if err != nil {
		t.Fatalf("AudioDuration: %v", err)
	}
	if duration != 1.0 {
		t.Fatalf("expected 1.0s estimate, got %v", duration)
	}
}

func TestAudioDurationFailsForNonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := AudioDuration(context.Background(), "ffprobe-not-installed", path); err == nil {
		t.Fatal("expected probe failure for non-mp3 without ffprobe")
	}
}
