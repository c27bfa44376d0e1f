// Package ffprobe wraps the ffprobe binary for audio duration probing.
package ffprobe
