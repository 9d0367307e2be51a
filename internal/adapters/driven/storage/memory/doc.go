// Package memory provides in-memory implementations of driven ports.
//
// The rule store backs the session's directory rule table, which by design
// does not outlive the process. The config store stands in for the TOML
// store in tests.
package memory
