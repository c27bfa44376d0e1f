// Package timeline assembles and persists the timeline document that drives
// video composition: it resolves timing segments against rendered image
// assets, picks the authoritative total duration, and serializes the result.
package timeline
