// Package file keeps wfmodels state on the local disk.
//
// ConfigStore holds user settings and saved directory rules in
// ~/.wfmodels/config.toml. FileStore reads workflow files and writes
// exported ones.
package file
