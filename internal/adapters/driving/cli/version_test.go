package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	setupServices(t)

	tests := []struct {
		name    string
		version string
	}{
		{"release", "1.4.0"},
		{"dev build", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			version = tt.version
			defer func() { version = original }()

			stdout, _, err := execute(t, "", "version")

			require.NoError(t, err)
			assert.Contains(t, stdout, "wfmodels "+tt.version)
			assert.Contains(t, stdout, runtime.GOOS+"/"+runtime.GOARCH)
		})
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	setupServices(t)

	_, _, err := execute(t, "", "version", "extra")

	assert.Error(t, err)
}
