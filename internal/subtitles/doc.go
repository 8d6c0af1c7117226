// Package subtitles lists and fetches YouTube caption tracks through the
// public timedtext endpoint. It is the preferred transcript source; the
// acquirer falls back to audio transcription when this package reports
// ErrDisabled or ErrNoTranscript.
package subtitles
