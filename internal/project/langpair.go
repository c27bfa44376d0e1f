package project

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pair is the language pair encoded in a content identifier such as
// "kor-chn": the native (screen1) language followed by the learning
// (screen2) language.
type Pair struct {
	Native   string
	Learning string
}

type langEntry struct {
	code3   string // ISO 639-2 primary
	alt3    string // alternate code used by the authoring tools
	display string
}

var languageTable = []langEntry{
	{"kor", "", "Korean"},
	{"zho", "chn", "Chinese"},
	{"eng", "", "English"},
	{"jpn", "", "Japanese"},
	{"spa", "", "Spanish"},
	{"fra", "fre", "French"},
	{"deu", "ger", "German"},
	{"vie", "", "Vietnamese"},
	{"tha", "", "Thai"},
	{"ind", "", "Indonesian"},
	{"rus", "", "Russian"},
	{"por", "", "Portuguese"},
	{"ita", "", "Italian"},
	{"ara", "", "Arabic"},
	{"hin", "", "Hindi"},
}

var byCode3 = func() map[string]*langEntry {
	index := make(map[string]*langEntry, len(languageTable)*2)
	for i := range languageTable {
		e := &languageTable[i]
		index[e.code3] = e
		if e.alt3 != "" {
			index[e.alt3] = e
		}
	}
	return index
}()

// ParsePair splits an identifier like "kor-chn" into its language pair.
// Identifiers that do not carry two plausible language codes are reported as
// not a pair; they remain valid identifiers, just undescribed.
func ParsePair(identifier string) (Pair, bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(identifier)), "-")
	if len(parts) != 2 {
		return Pair{}, false
	}
	for _, part := range parts {
		if len(part) < 2 || len(part) > 3 {
			return Pair{}, false
		}
		for _, r := range part {
			if r < 'a' || r > 'z' {
				return Pair{}, false
			}
		}
	}
	return Pair{Native: parts[0], Learning: parts[1]}, true
}

// DisplayName returns a human-readable language name for a code from an
// identifier. Unrecognized codes fall back to a title-cased BCP 47 parse, or
// the upper-cased code itself.
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "Unknown"
	}
	if e, ok := byCode3[code]; ok {
		return e.display
	}
	if tag, err := language.Parse(code); err == nil {
		if base, confidence := tag.Base(); confidence > language.No {
			if e, ok := byCode3[base.ISO3()]; ok {
				return e.display
			}
			return cases.Title(language.Und).String(base.String())
		}
	}
	return strings.ToUpper(code)
}

// Describe renders the pair as "Korean → Chinese" style text.
func (p Pair) Describe() string {
	return DisplayName(p.Native) + " → " + DisplayName(p.Learning)
}
