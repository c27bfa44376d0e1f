package timing

import (
	"fmt"
	"log/slog"
	"sort"

	"splice/internal/logging"
)

// MatchConversation applies the conversation production rule to raw per-scene
// segments. Each scene plays as two on-screen states: screen1 spans the
// native speaker's interval, screen2 spans the first learner speaker's start
// through the last learner speaker's end. Output order is narrative order,
// screen1 before screen2 per ascending sequence, regardless of the segments'
// numeric start times.
func MatchConversation(raw []Segment, identifier string, logger *slog.Logger) []Segment {
	if logger == nil {
		logger = logging.NewNop()
	}

	type screens struct {
		screen1 *Segment
		screen2 *Segment
	}
	groups := make(map[int]*screens)
	sequences := make([]int, 0, len(raw))

	for i := range raw {
		info, ok := ParseSegmentName(raw[i].Name)
		if !ok {
			logger.Warn("skipping unparsable conversation segment", logging.String("name", raw[i].Name))
			continue
		}
		group := groups[info.Sequence]
		if group == nil {
			group = &screens{}
			groups[info.Sequence] = group
			sequences = append(sequences, info.Sequence)
		}
		switch info.ScreenType {
		case "screen1":
			group.screen1 = &raw[i]
		case "screen2":
			group.screen2 = &raw[i]
		default:
			logger.Warn("conversation segment has unknown screen type",
				logging.String("name", raw[i].Name),
				logging.String("screen_type", info.ScreenType))
		}
	}

	sort.Ints(sequences)

	matched := make([]Segment, 0, len(sequences)*2)
	for _, sequence := range sequences {
		group := groups[sequence]
		for _, screen := range []struct {
			segment *Segment
			label   string
		}{
			{group.screen1, "screen1"},
			{group.screen2, "screen2"},
		} {
			if screen.segment == nil {
				continue
			}
			out := *screen.segment
			out.Name = fmt.Sprintf("%s_%03d_%s.png", identifier, sequence, screen.label)
			out.Sequence = sequence
			out.ScreenType = screen.label
			out.SceneType = "conversation"
			matched = append(matched, out)
		}
	}

	logger.Info("matched conversation timing", logging.Int("segments", len(matched)))
	return matched
}
