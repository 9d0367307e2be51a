package domain

import "strings"

// ModelExtensions are the recognised model file extensions.
var ModelExtensions = []string{".safetensors", ".sft"}

// BaseName returns the final path segment, splitting on both separators.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// HasFolder reports whether the path contains a folder separator.
func HasFolder(path string) bool {
	return strings.ContainsAny(path, `/\`)
}

// HasModelExtension reports whether the path ends in a model extension,
// ignoring case.
func HasModelExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range ModelExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ContainsModelExtension reports whether a model extension appears anywhere
// in the value, ignoring case. Candidate extraction uses this looser test,
// so "a.safetensors.bak" is accepted as a model file.
func ContainsModelExtension(value string) bool {
	lower := strings.ToLower(value)
	for _, ext := range ModelExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// StripModelExtension removes a trailing model extension, ignoring case.
func StripModelExtension(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range ModelExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
