// Package fs is the filesystem collaborator of dirpack. It hides the host
// filesystem behind the FS interface, decomposes paths into segments to
// compute the names stored in an archive and writes whole files.
package fs
