// Package dirpack packs a directory tree into an archive.
package dirpack
