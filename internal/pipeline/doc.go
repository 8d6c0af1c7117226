// Package pipeline orchestrates the video-to-post flow: reference parsing,
// duplicate checks, transcript acquisition, language detection, content
// generation, and publication, plus the batch, validation, and stats
// operations built on top of it.
package pipeline
