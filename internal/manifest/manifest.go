package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DialogueLine is one utterance in a dialogue scene.
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Scene is one narrative unit of a project. The populated fields depend on
// the scene type: conversation scenes carry the three scripts, intro and
// ending scenes carry the full script, dialogue scenes carry speaker lines.
type Scene struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Sequence       int            `json:"sequence,omitempty"`
	NativeScript   string         `json:"native_script,omitempty"`
	LearningScript string         `json:"learning_script,omitempty"`
	ReadingScript  string         `json:"reading_script,omitempty"`
	FullScript     string         `json:"full_script,omitempty"`
	Script         []DialogueLine `json:"script,omitempty"`
}

// Manifest is the scene-level content description driving rendering, audio
// generation, and timeline assembly.
type Manifest struct {
	ProjectName       string  `json:"project_name"`
	Resolution        string  `json:"resolution"`
	DefaultBackground string  `json:"default_background,omitempty"`
	Scenes            []Scene `json:"scenes"`
}

// DefaultResolution is applied when a manifest omits the resolution field.
const DefaultResolution = "1920x1080"

// Load reads, parses, and validates a manifest document.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest document from raw JSON.
func Parse(data []byte) (*Manifest, error) {
	var man Manifest
	if err := json.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if strings.TrimSpace(man.Resolution) == "" {
		man.Resolution = DefaultResolution
	}
	if err := man.Validate(); err != nil {
		return nil, err
	}
	return &man, nil
}

// SceneBySequence indexes scenes by their sequence number. Scenes without a
// sequence (some intro/ending manifests) are skipped.
func (m *Manifest) SceneBySequence() map[int]Scene {
	index := make(map[int]Scene, len(m.Scenes))
	for _, scene := range m.Scenes {
		if scene.Sequence > 0 {
			index[scene.Sequence] = scene
		}
	}
	return index
}
