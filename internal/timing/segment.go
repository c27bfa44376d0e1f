package timing

import (
	"strconv"
	"strings"
)

// Segment is one named time interval of the normalized timing model. All
// times are absolute seconds from the start of the mastering audio track.
// Sequence, ScreenType, and SceneType are populated by the converters and the
// conversation matcher; segments taken verbatim from an explicit payload may
// carry only the name.
type Segment struct {
	Name       string  `json:"name"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Duration   float64 `json:"duration"`
	Sequence   int     `json:"sequence,omitempty"`
	ScreenType string  `json:"screen_type,omitempty"`
	SceneType  string  `json:"scene_type,omitempty"`
}

// SegmentInfo is the scene identity decoded from a canonical segment name.
type SegmentInfo struct {
	Sequence   int
	ScreenType string
	SceneType  string
}

const startToMarker = "_start_to_"

// ParseSegmentName decodes names of the form
// scene_<seq>_<screen>_start_to_scene_<seq>_<screen>_end. It reports false
// when the marker is absent, the prefix has fewer than three tokens, the
// first token is not "scene", or the sequence token is not an integer.
// Callers drop unparsable segments with a warning; this is never fatal.
func ParseSegmentName(name string) (SegmentInfo, bool) {
	if !strings.Contains(name, startToMarker) {
		return SegmentInfo{}, false
	}
	prefix := strings.SplitN(name, startToMarker, 2)[0]
	parts := strings.Split(prefix, "_")
	if len(parts) < 3 || parts[0] != "scene" {
		return SegmentInfo{}, false
	}
	sequence, err := strconv.Atoi(parts[1])
	if err != nil {
		return SegmentInfo{}, false
	}
	info := SegmentInfo{
		Sequence:   sequence,
		ScreenType: parts[2],
		SceneType:  "conversation",
	}
	if info.ScreenType == "" {
		info.SceneType = "intro"
	}
	return info, true
}

// segmentName synthesizes the canonical name for a scene's timed unit.
func segmentName(sequence int, screenType string) string {
	var b strings.Builder
	writeHalf := func(suffix string) {
		b.WriteString("scene_")
		b.WriteString(strconv.Itoa(sequence))
		if screenType != "" {
			b.WriteByte('_')
			b.WriteString(screenType)
		}
		b.WriteString(suffix)
	}
	writeHalf("_start_to_")
	writeHalf("_end")
	return b.String()
}
