package timeline

import (
	"fmt"
	"os"
	"path/filepath"

	"splice/internal/project"
)

// FinalAudioPath locates the mastered audio track for a run. The mastering
// collaborator writes either a per-script mp3 under mp3/, a per-script mp3
// under audio/, or a single combined audio/audio.mp3. The first existing
// candidate wins; an empty string means no master audio was produced.
func FinalAudioPath(ctx project.Context) string {
	filename := fmt.Sprintf("%s_%s.mp3", ctx.Identifier, ctx.ScriptType)
	candidates := []string{
		filepath.Join(ctx.Paths.MP3Dir, filename),
		filepath.Join(ctx.Paths.AudioDir, filename),
		filepath.Join(ctx.Paths.AudioDir, "audio.mp3"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
