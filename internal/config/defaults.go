package config

const (
	defaultOutputDir     = "~/.local/share/splice/output"
	defaultLogDir        = "~/.local/share/splice/logs"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	// Estimate defaults mirror the production timing rules: roughly 0.3
	// seconds of narration per character, a one second silence gap between
	// timed units, and a 40/60 screen split for conversation scenes.
	defaultSecondsPerChar   = 0.3
	defaultScreen1Floor     = 2.0
	defaultScreen2Floor     = 3.0
	defaultIntroEndingFloor = 3.0
	defaultSilenceGap       = 1.0
	defaultScreen1Share     = 0.4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			FFprobe: defaultFFprobeBinary,
		},
		Timing: Timing{
			SecondsPerChar:   defaultSecondsPerChar,
			Screen1Floor:     defaultScreen1Floor,
			Screen2Floor:     defaultScreen2Floor,
			IntroEndingFloor: defaultIntroEndingFloor,
			SilenceGap:       defaultSilenceGap,
			Screen1Share:     defaultScreen1Share,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
