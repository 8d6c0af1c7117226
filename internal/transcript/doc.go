// Package transcript turns a video reference into plain transcript text.
// It tries caption tracks first and falls back to downloading the audio
// stream and transcribing it; only when both paths fail does acquisition
// error out.
package transcript
