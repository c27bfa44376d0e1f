package timeline

import (
	"context"

	"splice/internal/media/ffprobe"
)

// DurationSource records which authority set a timeline's total duration.
type DurationSource string

const (
	DurationFromProbe   DurationSource = "audio_probe"
	DurationFromPayload DurationSource = "timing_payload"
	DurationFromEntries DurationSource = "timeline_entries"
)

// probeAudio is swapped out by tests so assembly can run without an ffprobe
// binary on the machine.
var probeAudio = ffprobe.AudioDuration

// SetProbeForTests replaces the audio probe and returns a restore function.
func SetProbeForTests(probe func(ctx context.Context, binary, path string) (float64, error)) func() {
	previous := probeAudio
	probeAudio = probe
	return func() { probeAudio = previous }
}

// resolveTotalDuration selects the authoritative total duration. The mastered
// audio track is the master clock; the timing source's own report and the
// assembled entries are fallbacks, tried strictly in that order. Using a
// lower source while a higher one is available causes audio/video drift, so
// each step runs only when the previous one produced nothing.
func resolveTotalDuration(probedSeconds, reported float64, entries []Entry) (float64, DurationSource) {
	if probedSeconds > 0 {
		return ffprobe.Round2(probedSeconds), DurationFromProbe
	}
	if reported > 0 {
		return ffprobe.Round2(reported), DurationFromPayload
	}
	var maxEnd float64
	for _, entry := range entries {
		if entry.EndTime > maxEnd {
			maxEnd = entry.EndTime
		}
	}
	return ffprobe.Round2(maxEnd), DurationFromEntries
}
