// Package project models the identity of a generation run: the project name,
// the content identifier with its language pair, the script type, and the
// on-disk output tree shared with the rendering and audio collaborators.
package project
