package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/manifest"
)

const validManifest = `{
  "project_name": "demo",
  "resolution": "1920x1080",
  "scenes": [
    {
      "id": "scene_1",
      "type": "conversation",
      "sequence": 1,
      "native_script": "안녕하세요",
      "learning_script": "你好",
      "reading_script": "ni hao"
    },
    {"id": "scene_intro", "type": "intro", "sequence": 2, "full_script": "Welcome"}
  ]
}`

func TestLoadValidManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo_conversation.json")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	man, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if man.Resolution != "1920x1080" {
		t.Fatalf("resolution = %q", man.Resolution)
	}
	if len(man.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(man.Scenes))
	}
	index := man.SceneBySequence()
	if index[1].Type != "conversation" || index[2].Type != "intro" {
		t.Fatalf("unexpected sequence index: %+v", index)
	}
}

func TestParseDefaultsResolution(t *testing.T) {
	man, err := manifest.Parse([]byte(`{"scenes":[{"id":"s","type":"intro","full_script":"hi"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if man.Resolution != manifest.DefaultResolution {
		t.Fatalf("resolution = %q, want %q", man.Resolution, manifest.DefaultResolution)
	}
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	cases := map[string]string{
		"bad resolution": `{"resolution":"wide","scenes":[{"id":"s","type":"intro","full_script":"hi"}]}`,
		"no scenes":      `{"resolution":"1920x1080","scenes":[]}`,
		"duplicate ids":  `{"scenes":[{"id":"s","type":"intro","full_script":"a"},{"id":"s","type":"ending","full_script":"b"}]}`,
		"missing script": `{"scenes":[{"id":"s","type":"conversation","sequence":1,"native_script":"a","learning_script":"b"}]}`,
		"short dialogue": `{"scenes":[{"id":"s","type":"dialogue","script":[{"speaker":"A","text":"hi"}]}]}`,
		"unknown type":   `{"scenes":[{"id":"s","type":"credits"}]}`,
	}
	for name, payload := range cases {
		if _, err := manifest.Parse([]byte(payload)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil || !strings.Contains(err.Error(), "read manifest") {
		t.Fatalf("expected read error, got %v", err)
	}
}
