// Package postindex caches the video-ID to filename mapping of published
// posts in SQLite so duplicate checks skip the directory scan on the hot
// path. The content directory remains authoritative.
package postindex
