// Package filesystem lists the files of one directory for indexing and
// watches it for changes.
package filesystem
