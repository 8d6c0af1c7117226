// Package publish writes generated posts into the content directory with
// duplicate suppression and atomic file placement.
package publish
