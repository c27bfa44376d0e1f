package timing

import (
	"unicode/utf8"

	"splice/internal/config"
	"splice/internal/manifest"
)

// sceneEstimator is the per-scene-kind strategy for the two estimate
// fallbacks. Conversation scenes split into two screens with a silence gap;
// intro and ending scenes are a single timed unit.
type sceneEstimator interface {
	// fromText appends segments timed by script length and returns the
	// advanced cursor.
	fromText(scene manifest.Scene, rules config.Timing, cursor float64, out *[]Segment) float64
	// fromAudio appends segments filling the scene's even share of the
	// audio track and returns the advanced cursor.
	fromAudio(scene manifest.Scene, rules config.Timing, cursor, perScene float64, out *[]Segment) float64
}

func estimatorFor(scene manifest.Scene) sceneEstimator {
	if scene.Type == "conversation" {
		return conversationEstimator{}
	}
	return introEndingEstimator{}
}

// estimateFromAudio divides the probed audio duration evenly across scenes.
// The reported total is the audio duration itself.
func (r *Resolver) estimateFromAudio(scenes []manifest.Scene, audioSeconds float64) ([]Segment, float64) {
	if len(scenes) == 0 {
		return nil, 0
	}
	perScene := audioSeconds / float64(len(scenes))
	segments := make([]Segment, 0, len(scenes)*2)
	cursor := 0.0
	for _, scene := range scenes {
		cursor = estimatorFor(scene).fromAudio(scene, r.rules, cursor, perScene, &segments)
	}
	return segments, audioSeconds
}

// estimateFromText times every scene from its script length, inserting a
// silence gap after each timed unit. The reported total is the final cursor,
// gaps included.
func (r *Resolver) estimateFromText(scenes []manifest.Scene) ([]Segment, float64) {
	segments := make([]Segment, 0, len(scenes)*2)
	cursor := 0.0
	for _, scene := range scenes {
		cursor = estimatorFor(scene).fromText(scene, r.rules, cursor, &segments)
	}
	return segments, cursor
}

type conversationEstimator struct{}

func (conversationEstimator) fromText(scene manifest.Scene, rules config.Timing, cursor float64, out *[]Segment) float64 {
	screen1 := floored(rules.Screen1Floor, scene.NativeScript, "", rules.SecondsPerChar)
	screen2 := floored(rules.Screen2Floor, scene.LearningScript, scene.ReadingScript, rules.SecondsPerChar)

	*out = append(*out,
		estimateSegment(scene.Sequence, "screen1", cursor, screen1),
		estimateSegment(scene.Sequence, "screen2", cursor+screen1+rules.SilenceGap, screen2),
	)
	return cursor + screen1 + rules.SilenceGap + screen2 + rules.SilenceGap
}

func (conversationEstimator) fromAudio(scene manifest.Scene, rules config.Timing, cursor, perScene float64, out *[]Segment) float64 {
	// One silence gap sits between the screens, so only the remainder is
	// split across them.
	available := perScene - rules.SilenceGap
	screen1 := available * rules.Screen1Share
	screen2 := available * (1 - rules.Screen1Share)

	*out = append(*out,
		estimateSegment(scene.Sequence, "screen1", cursor, screen1),
		estimateSegment(scene.Sequence, "screen2", cursor+screen1+rules.SilenceGap, screen2),
	)
	return cursor + perScene
}

type introEndingEstimator struct{}

func (introEndingEstimator) fromText(scene manifest.Scene, rules config.Timing, cursor float64, out *[]Segment) float64 {
	duration := floored(rules.IntroEndingFloor, scene.FullScript, "", rules.SecondsPerChar)
	segment := estimateSegment(scene.Sequence, "", cursor, duration)
	segment.SceneType = introEndingSceneType(scene)
	*out = append(*out, segment)
	return cursor + duration + rules.SilenceGap
}

func (introEndingEstimator) fromAudio(scene manifest.Scene, rules config.Timing, cursor, perScene float64, out *[]Segment) float64 {
	segment := estimateSegment(scene.Sequence, "", cursor, perScene)
	segment.SceneType = introEndingSceneType(scene)
	*out = append(*out, segment)
	return cursor + perScene
}

func introEndingSceneType(scene manifest.Scene) string {
	switch scene.Type {
	case "intro", "ending":
		return scene.Type
	default:
		return "intro"
	}
}

func estimateSegment(sequence int, screenType string, start, duration float64) Segment {
	segment := Segment{
		Name:       segmentName(sequence, screenType),
		StartTime:  start,
		EndTime:    start + duration,
		Duration:   duration,
		Sequence:   sequence,
		ScreenType: screenType,
		SceneType:  "conversation",
	}
	if screenType == "" {
		segment.SceneType = "intro"
	}
	return segment
}

func floored(floor float64, primary, secondary string, secondsPerChar float64) float64 {
	chars := utf8.RuneCountInString(primary) + utf8.RuneCountInString(secondary)
	estimated := float64(chars) * secondsPerChar
	if estimated < floor {
		return floor
	}
	return estimated
}
