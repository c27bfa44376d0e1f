package timeline

import (
	"context"
	"errors"
	"log/slog"

	"splice/internal/assets"
	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/manifest"
	"splice/internal/project"
	"splice/internal/services"
	"splice/internal/timing"
)

var (
	// ErrManifestMissing aborts a run when the manifest cannot be loaded.
	ErrManifestMissing = errors.New("manifest missing")
	// ErrEmptyTimeline aborts a run when no entry survives asset validation.
	ErrEmptyTimeline = errors.New("empty timeline")
)

// Assembler builds the timeline document for one generation run. It owns all
// intermediate state for the duration of a run; nothing is shared between
// runs and the output document is regenerated whole, never patched.
type Assembler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Result reports an assembled run.
type Result struct {
	Document       *Document
	Path           string
	TimingSource   timing.Source
	DurationSource DurationSource
	Dropped        int
}

// NewAssembler builds an assembler.
func NewAssembler(cfg *config.Config, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{
		cfg:    cfg,
		logger: logger.With(logging.String(logging.FieldComponent, "timeline")),
	}
}

// Assemble runs the full pipeline for one project context: load manifest and
// timing payload, resolve the timing source, validate each segment's asset,
// pick the total duration, and persist the timeline document. Missing assets
// and unparsable segments are dropped with warnings; a missing manifest or a
// fully emptied timeline is fatal.
func (a *Assembler) Assemble(ctx context.Context, run project.Context) (*Result, error) {
	logger := a.logger.With(
		logging.String(logging.FieldIdentifier, run.Identifier),
		logging.String("script_type", string(run.ScriptType)),
	)

	man, err := manifest.Load(run.ManifestFile())
	if err != nil {
		return nil, services.Wrap(ErrManifestMissing, "timeline", "load manifest", run.ManifestFile(), err)
	}

	payload, err := timing.LoadFile(run.TimingFile())
	if err != nil {
		logger.Warn("timing payload unreadable; falling back to estimates",
			logging.String("path", run.TimingFile()),
			logging.Error(err))
		payload = nil
	}

	audioPath := FinalAudioPath(run)
	audioSeconds := a.probeMasterAudio(ctx, logger, audioPath)

	resolver := timing.NewResolver(run.Identifier, run.ScriptType, a.cfg.Timing, logger)
	resolved := resolver.Resolve(payload, man.Scenes, audioSeconds)

	entries, dropped := a.buildEntries(logger, run, resolved.Segments, man.SceneBySequence())
	if len(entries) == 0 {
		return nil, services.Wrap(ErrEmptyTimeline, "timeline", "validate assets",
			"no segment has a backing image asset", nil)
	}

	total, durationSource := resolveTotalDuration(audioSeconds, resolved.TotalDuration, entries)

	doc := &Document{
		Resolution:     man.Resolution,
		FinalAudioPath: audioPath,
		TotalDuration:  total,
		Timeline:       entries,
	}
	path := run.TimelineFile()
	if err := doc.Save(path); err != nil {
		return nil, services.Wrap(services.ErrTransient, "timeline", "save document", path, err)
	}

	logger.Info("timeline assembled",
		logging.Int("entries", len(entries)),
		logging.Int("dropped", dropped),
		logging.String("timing_source", resolved.Source.String()),
		logging.String("duration_source", string(durationSource)),
		logging.Float64("total_duration", total))

	return &Result{
		Document:       doc,
		Path:           path,
		TimingSource:   resolved.Source,
		DurationSource: durationSource,
		Dropped:        dropped,
	}, nil
}

func (a *Assembler) probeMasterAudio(ctx context.Context, logger *slog.Logger, audioPath string) float64 {
	if audioPath == "" {
		logger.Warn("no master audio track found")
		return 0
	}
	seconds, err := probeAudio(ctx, a.cfg.FFprobeBinary(), audioPath)
	if err != nil {
		logger.Warn("audio probe failed",
			logging.String("audio_path", audioPath),
			logging.Error(err))
		return 0
	}
	return seconds
}

// buildEntries converts normalized segments into timeline entries, in
// construction order. Identity comes from the fields the converters embed;
// segments taken verbatim from an explicit payload fall back to name parsing.
// Segments without identity or without a backing asset are dropped.
func (a *Assembler) buildEntries(logger *slog.Logger, run project.Context, segments []timing.Segment, scenes map[int]manifest.Scene) ([]Entry, int) {
	resolver := assets.NewResolver(run)
	entries := make([]Entry, 0, len(segments))
	dropped := 0

	for _, segment := range segments {
		sequence, screenType, sceneType := segment.Sequence, segment.ScreenType, segment.SceneType
		if sequence == 0 {
			info, ok := timing.ParseSegmentName(segment.Name)
			if !ok {
				logger.Warn("dropping segment with unparsable name", logging.String("name", segment.Name))
				dropped++
				continue
			}
			sequence, screenType, sceneType = info.Sequence, info.ScreenType, info.SceneType
		}
		// Intro/ending segments both decode as "intro"; the manifest says
		// which one the scene actually is.
		if scene, ok := scenes[sequence]; ok && sceneType != "conversation" {
			switch normalized := project.NormalizeScriptType(scene.Type); normalized {
			case project.ScriptIntro, project.ScriptEnding:
				sceneType = string(normalized)
			}
		}

		imagePath, exists := resolver.Resolve(sequence, screenType)
		if !exists {
			logger.Warn("dropping segment with missing image asset",
				logging.String("name", segment.Name),
				logging.String("image_path", imagePath))
			dropped++
			continue
		}

		entries = append(entries, Entry{
			SceneID:   segment.Name,
			StartTime: segment.StartTime,
			EndTime:   segment.EndTime,
			Duration:  segment.Duration,
			ImagePath: imagePath,
			SceneType: sceneType,
			Sequence:  sequence,
		})
	}
	return entries, dropped
}
