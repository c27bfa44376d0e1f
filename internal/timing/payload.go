package timing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source identifies which timing shape a payload carries. Exactly one source
// is chosen per run, in strict priority order, and never mixed.
type Source int

const (
	SourceNone Source = iota
	SourceSegments
	SourceScenes
	SourceMarks
	SourceAudioEstimate
	SourceTextEstimate
)

func (s Source) String() string {
	switch s {
	case SourceSegments:
		return "segments"
	case SourceScenes:
		return "scenes"
	case SourceMarks:
		return "marks"
	case SourceAudioEstimate:
		return "audio_estimate"
	case SourceTextEstimate:
		return "text_estimate"
	default:
		return "none"
	}
}

// Mark is a single named time position in milliseconds. The upstream
// generator emits marks pre-sorted as strictly alternating start/end pairs.
type Mark struct {
	Name     string  `json:"name"`
	Position float64 `json:"position"`
}

// ScreenWindow is a millisecond interval for one screen of a scene.
type ScreenWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SceneTimings carries the optional per-screen sub-timings of one scene.
type SceneTimings struct {
	Screen1 *ScreenWindow `json:"screen1,omitempty"`
	Screen2 *ScreenWindow `json:"screen2,omitempty"`
}

// PayloadScene is one scene of the scene-shaped timing payload.
type PayloadScene struct {
	Sequence int          `json:"sequence"`
	Timings  SceneTimings `json:"timings"`
}

// Payload is the timing document in whichever shape the upstream tooling
// produced. Key presence, not emptiness, decides the shape: a present but
// empty segments array still selects the segments source.
type Payload struct {
	Segments      []Segment
	Scenes        []PayloadScene
	Marks         []Mark
	TotalDuration float64

	hasSegments bool
	hasScenes   bool
	hasMarks    bool
}

// UnmarshalJSON records which of the shape keys were present so Source can
// resolve the tagged union once, up front.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Segments      *[]Segment      `json:"segments"`
		Scenes        *[]PayloadScene `json:"scenes"`
		Marks         *[]Mark         `json:"marks"`
		TotalDuration float64         `json:"total_duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Payload{TotalDuration: raw.TotalDuration}
	if raw.Segments != nil {
		p.Segments = *raw.Segments
		p.hasSegments = true
	}
	if raw.Scenes != nil {
		p.Scenes = *raw.Scenes
		p.hasScenes = true
	}
	if raw.Marks != nil {
		p.Marks = *raw.Marks
		p.hasMarks = true
	}
	return nil
}

// Source resolves the payload shape by strict priority:
// segments over scenes over marks.
func (p *Payload) Source() Source {
	switch {
	case p == nil:
		return SourceNone
	case p.hasSegments:
		return SourceSegments
	case p.hasScenes:
		return SourceScenes
	case p.hasMarks:
		return SourceMarks
	default:
		return SourceNone
	}
}

// LoadFile reads a timing document. A missing file is not an error; it
// returns a nil payload and the resolver falls through to the estimates.
func LoadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read timing document: %w", err)
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse timing document: %w", err)
	}
	return &payload, nil
}
