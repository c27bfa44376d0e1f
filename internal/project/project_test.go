package project_test

import (
	"path/filepath"
	"testing"

	"splice/internal/project"
)

func TestNormalizeScriptType(t *testing.T) {
	cases := map[string]project.ScriptType{
		"회화":           project.ScriptConversation,
		"대화":           project.ScriptDialogue,
		"인트로":          project.ScriptIntro,
		"엔딩":           project.ScriptEnding,
		"conversation": project.ScriptConversation,
		"Ending":       project.ScriptEnding,
		"custom":       project.ScriptType("custom"),
	}
	for raw, want := range cases {
		if got := project.NormalizeScriptType(raw); got != want {
			t.Fatalf("NormalizeScriptType(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestIsConversation(t *testing.T) {
	if !project.ScriptConversation.IsConversation() || !project.ScriptDialogue.IsConversation() {
		t.Fatal("conversation and dialogue must use conversation timing rules")
	}
	if project.ScriptIntro.IsConversation() || project.ScriptEnding.IsConversation() {
		t.Fatal("intro and ending must not use conversation timing rules")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Beginner Korean (Vol. 1)": "Beginner_Korean_Vol_1",
		"  spaced   out  ":         "spaced_out",
		"already_clean":            "already_clean",
	}
	for raw, want := range cases {
		if got := project.SanitizeName(raw); got != want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestContextPaths(t *testing.T) {
	ctx := project.NewContext("/out", "My Course", "kor-chn", project.ScriptConversation)
	wantRoot := filepath.Join("/out", "My_Course", "kor-chn")
	if ctx.Paths.OutputDir != wantRoot {
		t.Fatalf("output dir = %q, want %q", ctx.Paths.OutputDir, wantRoot)
	}
	if got := ctx.ManifestFile(); got != filepath.Join(wantRoot, "manifest", "kor-chn_conversation.json") {
		t.Fatalf("manifest file = %q", got)
	}
	if got := ctx.TimelineFile(); got != filepath.Join(wantRoot, "timeline", "kor-chn_conversation.json") {
		t.Fatalf("timeline file = %q", got)
	}
	if ctx.Paths.IntroEndingDir != filepath.Join(wantRoot, "intro_ending") {
		t.Fatalf("intro/ending dir = %q", ctx.Paths.IntroEndingDir)
	}
}

func TestParsePair(t *testing.T) {
	pair, ok := project.ParsePair("kor-chn")
	if !ok {
		t.Fatal("expected kor-chn to parse")
	}
	if pair.Native != "kor" || pair.Learning != "chn" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
	if got := pair.Describe(); got != "Korean → Chinese" {
		t.Fatalf("Describe() = %q", got)
	}

	for _, bad := range []string{"", "kor", "kor-chn-extra", "k0r-chn", "x-y2"} {
		if _, ok := project.ParsePair(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	if got := project.DisplayName("chn"); got != "Chinese" {
		t.Fatalf("DisplayName(chn) = %q", got)
	}
	if got := project.DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
	if got := project.DisplayName("zz"); got == "" {
		t.Fatal("DisplayName must never return empty")
	}
}
