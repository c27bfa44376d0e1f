package timeline_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"splice/internal/project"
	"splice/internal/testsupport"
	"splice/internal/timeline"
	"splice/internal/timing"
)

const conversationManifest = `{
  "project_name": "demo",
  "scenes": [
    {
      "id": "scene-1",
      "type": "conversation",
      "sequence": 1,
      "native_script": "안녕하세요",
      "learning_script": "你好",
      "reading_script": "ni hao"
    }
  ]
}`

const explicitSegmentsPayload = `{
  "segments": [
    {"name": "scene_1_screen1_start_to_scene_1_screen1_end", "start_time": 0.0, "end_time": 2.0, "duration": 2.0},
    {"name": "scene_1_screen2_start_to_scene_1_screen2_end", "start_time": 3.0, "end_time": 7.0, "duration": 4.0}
  ]
}`

func newRun(t *testing.T, baseDir string) project.Context {
	t.Helper()
	return project.NewContext(baseDir, "demo", "kor-chn", project.ScriptConversation)
}

func writeConversationFixtures(t *testing.T, run project.Context, withTiming bool) {
	t.Helper()
	testsupport.WriteFile(t, run.ManifestFile(), []byte(conversationManifest))
	if withTiming {
		testsupport.WriteFile(t, run.TimingFile(), []byte(explicitSegmentsPayload))
	}
	testsupport.WriteFile(t, filepath.Join(run.Paths.ConversationDir, "kor-chn_001_screen1.png"), []byte("png"))
	testsupport.WriteFile(t, filepath.Join(run.Paths.ConversationDir, "kor-chn_001_screen2.png"), []byte("png"))
	testsupport.WriteFile(t, filepath.Join(run.Paths.MP3Dir, "kor-chn_conversation.mp3"), []byte("mp3"))
}

func stubProbe(t *testing.T, seconds float64, err error) {
	t.Helper()
	restore := timeline.SetProbeForTests(func(context.Context, string, string) (float64, error) {
		return seconds, err
	})
	t.Cleanup(restore)
}

func TestAssembleExplicitSegments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	writeConversationFixtures(t, run, true)
	stubProbe(t, 8.5, nil)

	result, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.TimingSource != timing.SourceSegments {
		t.Fatalf("timing source = %v, want %v", result.TimingSource, timing.SourceSegments)
	}
	if result.DurationSource != timeline.DurationFromProbe {
		t.Fatalf("duration source = %v, want %v", result.DurationSource, timeline.DurationFromProbe)
	}

	doc := result.Document
	if doc.Resolution != "1920x1080" {
		t.Fatalf("resolution = %q", doc.Resolution)
	}
	if doc.TotalDuration != 8.5 {
		t.Fatalf("total duration = %v, want 8.5", doc.TotalDuration)
	}
	if doc.FinalAudioPath != filepath.Join(run.Paths.MP3Dir, "kor-chn_conversation.mp3") {
		t.Fatalf("final audio path = %q", doc.FinalAudioPath)
	}
	if len(doc.Timeline) != 2 {
		t.Fatalf("entries = %d, want 2", len(doc.Timeline))
	}

	screen1, screen2 := doc.Timeline[0], doc.Timeline[1]
	if screen1.SceneID != "kor-chn_001_screen1.png" || screen2.SceneID != "kor-chn_001_screen2.png" {
		t.Fatalf("scene ids = %q, %q", screen1.SceneID, screen2.SceneID)
	}
	if screen1.StartTime != 0.0 || screen1.EndTime != 2.0 || screen1.Duration != 2.0 {
		t.Fatalf("screen1 timing = %+v", screen1)
	}
	if screen2.StartTime != 3.0 || screen2.EndTime != 7.0 || screen2.Duration != 4.0 {
		t.Fatalf("screen2 timing = %+v", screen2)
	}
	for _, entry := range doc.Timeline {
		if entry.SceneType != "conversation" || entry.Sequence != 1 {
			t.Fatalf("entry identity = %+v", entry)
		}
		if _, err := os.Stat(entry.ImagePath); err != nil {
			t.Fatalf("image path %q: %v", entry.ImagePath, err)
		}
	}
}

func TestAssembleDropsMissingAsset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	writeConversationFixtures(t, run, true)
	stubProbe(t, 8.5, nil)

	if err := os.Remove(filepath.Join(run.Paths.ConversationDir, "kor-chn_001_screen2.png")); err != nil {
		t.Fatalf("remove asset: %v", err)
	}

	result, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(result.Document.Timeline) != 1 {
		t.Fatalf("entries = %d, want 1", len(result.Document.Timeline))
	}
	if result.Document.Timeline[0].SceneID != "kor-chn_001_screen1.png" {
		t.Fatalf("surviving entry = %q", result.Document.Timeline[0].SceneID)
	}
	if result.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", result.Dropped)
	}
}

func TestAssembleMissingManifestFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	stubProbe(t, 0, errors.New("unreachable"))

	_, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if !errors.Is(err, timeline.ErrManifestMissing) {
		t.Fatalf("err = %v, want ErrManifestMissing", err)
	}
}

func TestAssembleAllAssetsMissingFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	writeConversationFixtures(t, run, true)
	stubProbe(t, 8.5, nil)

	for _, name := range []string{"kor-chn_001_screen1.png", "kor-chn_001_screen2.png"} {
		if err := os.Remove(filepath.Join(run.Paths.ConversationDir, name)); err != nil {
			t.Fatalf("remove asset: %v", err)
		}
	}

	_, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if !errors.Is(err, timeline.ErrEmptyTimeline) {
		t.Fatalf("err = %v, want ErrEmptyTimeline", err)
	}
}

func TestAssembleAudioEstimateFallback(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	writeConversationFixtures(t, run, false)
	stubProbe(t, 8.5, nil)

	result, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.TimingSource != timing.SourceAudioEstimate {
		t.Fatalf("timing source = %v, want %v", result.TimingSource, timing.SourceAudioEstimate)
	}
	doc := result.Document
	if doc.TotalDuration != 8.5 {
		t.Fatalf("total duration = %v, want 8.5", doc.TotalDuration)
	}
	if len(doc.Timeline) != 2 {
		t.Fatalf("entries = %d, want 2", len(doc.Timeline))
	}
	screen1, screen2 := doc.Timeline[0], doc.Timeline[1]
	gap := screen2.StartTime - screen1.EndTime
	if math.Abs(gap-1.0) > 1e-9 {
		t.Fatalf("inter-screen gap = %v, want 1.0", gap)
	}
	if span := screen1.Duration + screen2.Duration; span > 8.5 {
		t.Fatalf("combined span %v exceeds audio duration", span)
	}
}

func TestAssembledDocumentRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	run := newRun(t, cfg.Paths.OutputDir)
	writeConversationFixtures(t, run, true)
	stubProbe(t, 8.5, nil)

	result, err := timeline.NewAssembler(cfg, nil).Assemble(context.Background(), run)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	loaded, err := timeline.Load(result.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Resolution != result.Document.Resolution ||
		loaded.FinalAudioPath != result.Document.FinalAudioPath ||
		loaded.TotalDuration != result.Document.TotalDuration {
		t.Fatalf("round trip header mismatch: %+v vs %+v", loaded, result.Document)
	}
	if len(loaded.Timeline) != len(result.Document.Timeline) {
		t.Fatalf("round trip entries = %d, want %d", len(loaded.Timeline), len(result.Document.Timeline))
	}
	for i := range loaded.Timeline {
		if loaded.Timeline[i] != result.Document.Timeline[i] {
			t.Fatalf("entry %d mismatch: %+v vs %+v", i, loaded.Timeline[i], result.Document.Timeline[i])
		}
	}
}
