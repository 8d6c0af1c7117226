// Package services defines the shared error taxonomy for pipeline stages and
// hosts the external service clients (Gemini, yt-dlp) in subpackages.
//
// Stages wrap failures with services.Wrap, tagging them with one of the
// sentinel markers so the orchestrator can classify them: reference errors
// and acquisition errors are fatal to a single video, configuration errors
// abort before any per-video work, and generation markers record silent
// degradation that the pipeline continues past.
package services
