// Package gemini wraps the Google Gemini generateContent REST API for the
// two calls the pipeline needs: plain text generation and inline audio
// transcription.
package gemini
