package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"splice/internal/project"
)

// Resolver is the single authority for mapping a normalized segment to its
// rendered image asset and deciding whether that asset exists. No other
// package checks image paths; a timeline entry is only ever created over a
// file this resolver has verified.
type Resolver struct {
	identifier      string
	conversationDir string
	introEndingDir  string
}

// NewResolver builds the resolver for one run's asset directories.
func NewResolver(ctx project.Context) *Resolver {
	return &Resolver{
		identifier:      ctx.Identifier,
		conversationDir: ctx.Paths.ConversationDir,
		introEndingDir:  ctx.Paths.IntroEndingDir,
	}
}

// ImagePath returns the deterministic asset path for a segment identity.
// Conversation segments (non-empty screen type) live in the conversation
// directory; intro and ending segments in the intro/ending directory.
func (r *Resolver) ImagePath(sequence int, screenType string) string {
	if screenType != "" {
		filename := fmt.Sprintf("%s_%03d_%s.png", r.identifier, sequence, screenType)
		return filepath.Join(r.conversationDir, filename)
	}
	filename := fmt.Sprintf("%s_%03d.png", r.identifier, sequence)
	return filepath.Join(r.introEndingDir, filename)
}

// Resolve maps a segment identity to its asset path and verifies the file
// exists on disk. The boolean is false when the asset is missing; the caller
// drops the segment, it never fabricates a placeholder.
func (r *Resolver) Resolve(sequence int, screenType string) (string, bool) {
	path := r.ImagePath(sequence, screenType)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}
