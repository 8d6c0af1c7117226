// Package generate turns a transcript into the four content fields of a
// blog post. The fields are produced concurrently and each carries its own
// heuristic fallback, so a flaky model degrades output quality without
// failing the video.
package generate
