// Package ffprobe wraps the ffprobe binary for container inspection:
// duration, stream layout, and embedded chapter metadata.
package ffprobe
