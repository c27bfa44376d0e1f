package project

import (
	"fmt"
	"path/filepath"
)

// Paths describes the per-identifier output tree a generation run reads from
// and writes into. Rendering and audio mastering collaborators populate the
// asset directories before the timeline stage runs.
type Paths struct {
	OutputDir       string
	ManifestDir     string
	TimingDir       string
	MP3Dir          string
	AudioDir        string
	ConversationDir string
	IntroEndingDir  string
	TimelineDir     string
}

// NewPaths lays out the directory structure under base/project/identifier.
func NewPaths(base, projectName, identifier string) Paths {
	output := filepath.Join(base, SanitizeName(projectName), identifier)
	return Paths{
		OutputDir:       output,
		ManifestDir:     filepath.Join(output, "manifest"),
		TimingDir:       filepath.Join(output, "timing"),
		MP3Dir:          filepath.Join(output, "mp3"),
		AudioDir:        filepath.Join(output, "audio"),
		ConversationDir: filepath.Join(output, "conversation"),
		IntroEndingDir:  filepath.Join(output, "intro_ending"),
		TimelineDir:     filepath.Join(output, "timeline"),
	}
}

// Context carries the inputs identifying one generation run.
type Context struct {
	Project    string
	Identifier string
	ScriptType ScriptType
	Paths      Paths
}

// NewContext builds the run context for a project identifier and script type.
func NewContext(baseDir, projectName, identifier string, scriptType ScriptType) Context {
	return Context{
		Project:    projectName,
		Identifier: identifier,
		ScriptType: scriptType,
		Paths:      NewPaths(baseDir, projectName, identifier),
	}
}

// ManifestFile returns the manifest document path for the run's script type.
func (c Context) ManifestFile() string {
	return filepath.Join(c.Paths.ManifestDir, c.documentName("json"))
}

// TimingFile returns the timing document path for the run's script type.
func (c Context) TimingFile() string {
	return filepath.Join(c.Paths.TimingDir, c.documentName("json"))
}

// TimelineFile returns the output timeline document path.
func (c Context) TimelineFile() string {
	return filepath.Join(c.Paths.TimelineDir, c.documentName("json"))
}

func (c Context) documentName(ext string) string {
	return fmt.Sprintf("%s_%s.%s", c.Identifier, c.ScriptType, ext)
}
