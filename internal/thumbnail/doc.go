// Package thumbnail enriches posts with the video's title and cover image
// through the keyless oEmbed endpoint. Failures never block publication.
package thumbnail
