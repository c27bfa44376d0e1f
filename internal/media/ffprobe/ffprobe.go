package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Duration   string `json:"duration"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	parsed := parseFloat(r.Format.Duration)
	if math.IsNaN(parsed) {
		return 0
	}
	return parsed
}

// AudioDuration probes the duration of an audio file in seconds, rounded to
// two decimals. When ffprobe fails for an MP3 file the duration is estimated
// from the file size assuming 128 kbps, matching the mastering encoder output.
func AudioDuration(ctx context.Context, binary string, path string) (float64, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		if estimate, ok := estimateMP3Seconds(path); ok {
			return estimate, nil
		}
		return 0, err
	}
	duration := result.DurationSeconds()
	if duration <= 0 {
		if estimate, ok := estimateMP3Seconds(path); ok {
			return estimate, nil
		}
		return 0, fmt.Errorf("ffprobe inspect: no duration reported for %s", path)
	}
	return Round2(duration), nil
}

const mp3FallbackBitrate = 128 * 1000

func estimateMP3Seconds(path string) (float64, bool) {
	if !strings.HasSuffix(strings.ToLower(path), ".mp3") {
		return 0, false
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() <= 0 {
		return 0, false
	}
	return Round2(float64(info.Size()) * 8 / mp3FallbackBitrate), true
}

// Round2 rounds seconds to two decimal places, the precision used throughout
// the timeline documents.
func Round2(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
