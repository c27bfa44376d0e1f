package project

import "strings"

// ScriptType identifies which script of a project a generation run targets.
type ScriptType string

const (
	ScriptConversation ScriptType = "conversation"
	ScriptDialogue     ScriptType = "dialogue"
	ScriptIntro        ScriptType = "intro"
	ScriptEnding       ScriptType = "ending"
)

// Authoring tools emit Korean script type labels; the pipeline works with the
// English canonical forms everywhere else.
var scriptTypeAliases = map[string]ScriptType{
	"회화":   ScriptConversation,
	"대화":   ScriptDialogue,
	"인트로":  ScriptIntro,
	"엔딩":   ScriptEnding,
}

// NormalizeScriptType maps a raw script type label (English or Korean) to its
// canonical form. Unknown labels pass through lowercased.
func NormalizeScriptType(raw string) ScriptType {
	trimmed := strings.TrimSpace(raw)
	if mapped, ok := scriptTypeAliases[trimmed]; ok {
		return mapped
	}
	return ScriptType(strings.ToLower(trimmed))
}

// IsConversation reports whether the script type uses the two-screen
// conversation timing rules.
func (s ScriptType) IsConversation() bool {
	return s == ScriptConversation || s == ScriptDialogue
}

func (s ScriptType) String() string {
	return string(s)
}
