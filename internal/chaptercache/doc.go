// Package chaptercache persists detected chapter lists as JSON sidecar
// files next to their source recordings. Caches are write-once and are
// invalidated when their title shape disagrees with the configured
// title-extraction policy.
package chaptercache
