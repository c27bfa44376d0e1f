// Package manifest loads and validates the scene manifest documents authored
// upstream of the timeline pipeline.
package manifest
