// Package ytdlp shells out to the yt-dlp executable to download audio-only
// streams for videos whose subtitles are unavailable.
package ytdlp
