// Package normalisers converts link sources into plain text for bulk
// matching. Each normaliser handles one format, chosen by file extension.
//
// Normalisers are collected in a Registry, which implements
// driven.LinkNormaliser.
package normalisers
