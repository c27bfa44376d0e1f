package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/project"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	outputDir := filepath.Join(base, "output")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(base, "splice.toml")

	content := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, outputDir, logDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, outputDir: outputDir}
}

func (env *cliTestEnv) run(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("splice %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func (env *cliTestEnv) writeFixtures(t *testing.T) project.Context {
	t.Helper()

	run := project.NewContext(env.outputDir, "demo", "kor-chn", project.ScriptConversation)
	testsupport.WriteFile(t, run.ManifestFile(), []byte(`{
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
}`))
	testsupport.WriteFile(t, run.TimingFile(), []byte(`{
  "segments": [
    {"name": "scene_1_screen1_start_to_scene_1_screen1_end", "start_time": 0.0, "end_time": 2.0, "duration": 2.0},
    {"name": "scene_1_screen2_start_to_scene_1_screen2_end", "start_time": 3.0, "end_time": 7.0, "duration": 4.0}
  ]
}`))
	testsupport.WriteFile(t, filepath.Join(run.Paths.ConversationDir, "kor-chn_001_screen1.png"), []byte("png"))
	testsupport.WriteFile(t, filepath.Join(run.Paths.ConversationDir, "kor-chn_001_screen2.png"), []byte("png"))
	testsupport.WriteFile(t, filepath.Join(run.Paths.MP3Dir, "kor-chn_conversation.mp3"), []byte("mp3"))
	return run
}

func stubProbe(t *testing.T, seconds float64) {
	t.Helper()
	restore := timeline.SetProbeForTests(func(context.Context, string, string) (float64, error) {
		return seconds, nil
	})
	t.Cleanup(restore)
}

func TestGenerateShowAndRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	run := env.writeFixtures(t)
	stubProbe(t, 8.5)

	out := env.run(t, "generate", "demo", "kor-chn")
	if !strings.Contains(out, "Entries: 2 (dropped 0)") {
		t.Fatalf("generate output missing entry summary:\n%s", out)
	}
	if _, err := os.Stat(run.TimelineFile()); err != nil {
		t.Fatalf("timeline file: %v", err)
	}

	out = env.run(t, "show", "demo", "kor-chn", "--json")
	var doc timeline.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("show --json output: %v\n%s", err, out)
	}
	if doc.TotalDuration != 8.5 || len(doc.Timeline) != 2 {
		t.Fatalf("shown document = %+v", doc)
	}

	out = env.run(t, "show", "demo", "kor-chn")
	if !strings.Contains(out, "Korean → Chinese") {
		t.Fatalf("show output missing language pair:\n%s", out)
	}

	out = env.run(t, "runs", "list")
	if !strings.Contains(out, "kor-chn") || !strings.Contains(out, "completed") {
		t.Fatalf("runs list output:\n%s", out)
	}

	out = env.run(t, "runs", "health")
	if !strings.Contains(out, "1 completed") {
		t.Fatalf("runs health output:\n%s", out)
	}
}

func TestGenerateFailureRecorded(t *testing.T) {
	env := setupCLITestEnv(t)
	stubProbe(t, 0)

	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--config", env.configPath, "generate", "demo", "kor-chn"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("generate without a manifest should fail")
	}

	out := env.run(t, "runs", "list")
	if !strings.Contains(out, "failed") {
		t.Fatalf("runs list should show the failed run:\n%s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(filepath.Dir(env.configPath), "generated.toml")

	out := env.run(t, "config", "init", "--path", target)
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("config init output:\n%s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config: %v", err)
	}

	out = env.run(t, "config", "path")
	if !strings.Contains(out, env.configPath) {
		t.Fatalf("config path output:\n%s", out)
	}

	out = env.run(t, "config", "show")
	if !strings.Contains(out, "[paths]") || !strings.Contains(out, "output_dir") {
		t.Fatalf("config show output:\n%s", out)
	}
}
