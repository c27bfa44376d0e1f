package timing

import (
	"log/slog"
	"strconv"
	"strings"

	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/manifest"
	"splice/internal/project"
)

// Resolver normalizes a timing payload into second-based segments for one
// generation run.
type Resolver struct {
	identifier string
	scriptType project.ScriptType
	rules      config.Timing
	logger     *slog.Logger
}

// Result is the normalized timing for a run. TotalDuration is the source's
// own report: the payload's total_duration field for real sources, or the
// synthesized span for the estimates. Zero means the source reported nothing.
type Result struct {
	Segments      []Segment
	Source        Source
	TotalDuration float64
}

// NewResolver builds a resolver for one run.
func NewResolver(identifier string, scriptType project.ScriptType, rules config.Timing, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		identifier: identifier,
		scriptType: scriptType,
		rules:      rules,
		logger:     logger.With(logging.String(logging.FieldComponent, "timing")),
	}
}

// Resolve picks the timing source by strict priority and converts it to
// normalized segments. Scenes and the probed audio duration feed the estimate
// fallbacks used when the payload carries no source at all.
func (r *Resolver) Resolve(payload *Payload, scenes []manifest.Scene, audioSeconds float64) Result {
	switch payload.Source() {
	case SourceSegments:
		segments := payload.Segments
		if r.scriptType.IsConversation() {
			segments = MatchConversation(segments, r.identifier, r.logger)
		}
		r.logger.Info("using explicit timing segments", logging.Int("segments", len(segments)))
		return Result{Segments: segments, Source: SourceSegments, TotalDuration: payload.TotalDuration}
	case SourceScenes:
		segments := convertScenes(payload.Scenes)
		r.logger.Info("converted scene timings to segments", logging.Int("segments", len(segments)))
		return Result{Segments: segments, Source: SourceScenes, TotalDuration: payload.TotalDuration}
	case SourceMarks:
		segments := r.convertMarks(payload.Marks)
		r.logger.Info("converted timing marks to segments", logging.Int("segments", len(segments)))
		return Result{Segments: segments, Source: SourceMarks, TotalDuration: payload.TotalDuration}
	}

	if audioSeconds > 0 {
		r.logger.Warn("no timing source; estimating from audio duration", logging.Float64("audio_seconds", audioSeconds))
		segments, total := r.estimateFromAudio(scenes, audioSeconds)
		return Result{Segments: segments, Source: SourceAudioEstimate, TotalDuration: total}
	}

	r.logger.Warn("no timing source or audio; estimating from text length")
	segments, total := r.estimateFromText(scenes)
	return Result{Segments: segments, Source: SourceTextEstimate, TotalDuration: total}
}

// convertScenes turns millisecond screen windows into segments.
func convertScenes(scenes []PayloadScene) []Segment {
	segments := make([]Segment, 0, len(scenes)*2)
	for _, scene := range scenes {
		if scene.Timings.Screen1 != nil {
			segments = append(segments, windowSegment(scene.Sequence, "screen1", *scene.Timings.Screen1))
		}
		if scene.Timings.Screen2 != nil {
			segments = append(segments, windowSegment(scene.Sequence, "screen2", *scene.Timings.Screen2))
		}
	}
	return segments
}

func windowSegment(sequence int, screenType string, window ScreenWindow) Segment {
	return Segment{
		Name:       segmentName(sequence, screenType),
		StartTime:  window.Start / 1000.0,
		EndTime:    window.End / 1000.0,
		Duration:   (window.End - window.Start) / 1000.0,
		Sequence:   sequence,
		ScreenType: screenType,
		SceneType:  "conversation",
	}
}

// convertMarks pairs marks positionally, two at a time. Pairing is not
// matched by name correlation: the upstream generator always emits an even,
// pre-sorted, strictly alternating list, and re-pairing here would silently
// change which segments are produced. A pair failing the suffix check is
// skipped with a warning; a trailing unpaired mark is discarded.
func (r *Resolver) convertMarks(marks []Mark) []Segment {
	segments := make([]Segment, 0, len(marks)/2)
	for i := 0; i+1 < len(marks); i += 2 {
		start, end := marks[i], marks[i+1]
		if !strings.HasSuffix(start.Name, "_start") || !strings.HasSuffix(end.Name, "_end") {
			r.logger.Warn("mark pair failed start/end suffix check",
				logging.String("start_mark", start.Name),
				logging.String("end_mark", end.Name))
			continue
		}

		parts := strings.Split(start.Name, "_")
		if len(parts) < 3 {
			r.logger.Warn("mark name too short to carry scene identity", logging.String("mark", start.Name))
			continue
		}
		sequence, err := strconv.Atoi(parts[1])
		if err != nil {
			r.logger.Warn("mark name carries non-numeric sequence", logging.String("mark", start.Name))
			continue
		}

		segments = append(segments, Segment{
			Name:       start.Name + "_to_" + end.Name,
			StartTime:  start.Position / 1000.0,
			EndTime:    end.Position / 1000.0,
			Duration:   (end.Position - start.Position) / 1000.0,
			Sequence:   sequence,
			ScreenType: parts[2],
			SceneType:  "conversation",
		})
	}
	return segments
}
