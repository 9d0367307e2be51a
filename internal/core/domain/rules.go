package domain

import "sort"

// DirectoryRule maps a node type to the directory its model files live in.
type DirectoryRule struct {
	// NodeType is the node type name (unique key).
	NodeType string `json:"node_type"`

	// Directory is the default storage directory.
	Directory string `json:"directory"`
}

// DirectoryRules is the read side of the rule table. Extraction and
// reconciliation take it as an explicit argument.
type DirectoryRules interface {
	// Has reports whether a rule exists for the node type.
	Has(nodeType string) bool

	// DirectoryFor returns the directory for the node type, or "".
	DirectoryFor(nodeType string) string
}

// RuleTable is a map-backed DirectoryRules.
type RuleTable map[string]string

// Verify interface compliance.
var _ DirectoryRules = RuleTable(nil)

// Has reports whether a rule exists for the node type.
func (t RuleTable) Has(nodeType string) bool {
	if nodeType == "" {
		return false
	}
	_, ok := t[nodeType]
	return ok
}

// DirectoryFor returns the directory for the node type, or "".
func (t RuleTable) DirectoryFor(nodeType string) string {
	return t[nodeType]
}

// Rules returns the table as a slice sorted by node type.
func (t RuleTable) Rules() []DirectoryRule {
	rules := make([]DirectoryRule, 0, len(t))
	for nodeType, dir := range t {
		rules = append(rules, DirectoryRule{NodeType: nodeType, Directory: dir})
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].NodeType < rules[j].NodeType
	})
	return rules
}

// Clone returns an independent copy of the table.
func (t RuleTable) Clone() RuleTable {
	out := make(RuleTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// DefaultDirectoryRules returns a fresh copy of the built-in rule set.
func DefaultDirectoryRules() RuleTable {
	return RuleTable{
		"AudioEncoderLoader":        "audio_encoders",
		"CLIPLoader":                "text_encoders",
		"CLIPVisionLoader":          "clip_vision",
		"CheckpointLoader":          "checkpoints",
		"CheckpointLoaderSimple":    "checkpoints",
		"ControlNetLoader":          "controlnet",
		"DiffControlNetLoader":      "controlnet",
		"DiffusersLoader":           "diffusers",
		"DualCLIPLoader":            "text_encoders",
		"GLIGENLoader":              "gligen",
		"ImageOnlyCheckpointLoader": "checkpoints",
		"LoraLoader":                "loras",
		"LoraLoaderModelOnly":       "loras",
		"ModelPatchLoader":          "model_patches",
		"PhotoMakerLoader":          "photomaker",
		"QuadrupleCLIPLoader":       "text_encoders",
		"StyleModelLoader":          "style_models",
		"TripleCLIPLoader":          "text_encoders",
		"UNETLoader":                "diffusion_models",
		"UpscaleModelLoader":        "upscale_models",
		"VAELoader":                 "vae",
		"unCLIPCheckpointLoader":    "checkpoints",
	}
}
