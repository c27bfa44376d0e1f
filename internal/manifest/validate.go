package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// Validate checks the structural rules the authoring tools guarantee: a WxH
// resolution, at least one scene, unique scene ids, and the per-type required
// script fields.
func (m *Manifest) Validate() error {
	if !resolutionPattern.MatchString(m.Resolution) {
		return fmt.Errorf("manifest resolution %q must match WxH (e.g. 1920x1080)", m.Resolution)
	}
	if len(m.Scenes) == 0 {
		return fmt.Errorf("manifest requires at least one scene")
	}

	seen := make(map[string]struct{}, len(m.Scenes))
	for i, scene := range m.Scenes {
		if scene.ID != "" {
			if _, dup := seen[scene.ID]; dup {
				return fmt.Errorf("duplicate scene id %q", scene.ID)
			}
			seen[scene.ID] = struct{}{}
		}
		if err := validateScene(scene); err != nil {
			return fmt.Errorf("scene %d: %w", i+1, err)
		}
	}
	return nil
}

func validateScene(scene Scene) error {
	switch scene.Type {
	case "conversation":
		if scene.Sequence <= 0 {
			return fmt.Errorf("conversation scene requires a positive sequence")
		}
		for field, value := range map[string]string{
			"native_script":   scene.NativeScript,
			"learning_script": scene.LearningScript,
			"reading_script":  scene.ReadingScript,
		} {
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("conversation scene requires %s", field)
			}
		}
	case "intro", "ending":
		if strings.TrimSpace(scene.FullScript) == "" {
			return fmt.Errorf("%s scene requires full_script", scene.Type)
		}
	case "dialogue":
		if len(scene.Script) < 2 {
			return fmt.Errorf("dialogue scene requires at least two lines")
		}
	case "":
		return fmt.Errorf("scene type is required")
	default:
		return fmt.Errorf("unknown scene type %q", scene.Type)
	}
	return nil
}
