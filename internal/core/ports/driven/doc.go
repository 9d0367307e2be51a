// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentCodec: Parses and serialises workflow JSON
//   - RuleStore: Session directory rule table
//   - ConfigStore: Application configuration
//   - FileStore: Reads and writes workflow files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Clipboard: System clipboard. Without it, copy reports an error.
//   - FileWatcher: File change notification. Without it, edit --watch is refused.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
