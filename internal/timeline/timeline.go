package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one visual unit of the rendered video. ImagePath always references
// a file that existed when the timeline was assembled.
type Entry struct {
	SceneID   string  `json:"scene_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
	ImagePath string  `json:"image_path"`
	SceneType string  `json:"scene_type"`
	Sequence  int     `json:"sequence"`
}

// Document is the timeline contract consumed by the video compositor. Field
// names and units are fixed; entries are in construction order, sequence
// ascending with screen1 before screen2, never re-sorted by timestamp.
type Document struct {
	Resolution     string  `json:"resolution"`
	FinalAudioPath string  `json:"final_audio_path"`
	TotalDuration  float64 `json:"total_duration"`
	Timeline       []Entry `json:"timeline"`
}

// Save writes the document as indented JSON, creating the parent directory.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create timeline directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}

// Load reads a previously saved timeline document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	return &doc, nil
}
