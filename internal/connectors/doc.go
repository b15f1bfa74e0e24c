// Package connectors provides implementations of the Connector interface.
// A connector lists the files of a document source and can watch it for
// changes. similar ships a single connector, filesystem, which reads the
// files directly inside one directory.
package connectors
