// Package assets maps normalized timeline segments to their rendered image
// files and verifies existence before any segment becomes a timeline entry.
package assets
