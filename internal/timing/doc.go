// Package timing normalizes the incompatible timing payload shapes produced
// by the upstream audio tooling into one list of second-based segments, and
// synthesizes estimates when no timing source exists at all.
package timing
