// Package archive contains the writers dirpack stores entries with. A Writer
// accepts files and directory markers by name and commits the archive index
// on Close. Zip archives compress each entry on its own, tar archives are
// compressed as a whole stream.
package archive
