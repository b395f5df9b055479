package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "order preserved",
			args:         []string{"-d", "dsn", "-l", "debug", "-x", "1"},
			allowedFlags: []string{"-l", "-d"},
			want:         []string{"-d", "dsn", "-l", "debug"},
		},
		{
			name:         "flag without value before another flag",
			args:         []string{"-c", "-a", "x"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-a", ":1", "-config", "cfg.json"}
	assert.Equal(t, "cfg.json", ConfigFileFlag())

	os.Args = []string{"bin", "-c=short.json"}
	assert.Equal(t, "short.json", ConfigFileFlag())

	os.Args = []string{"bin", "-a", ":1"}
	assert.Equal(t, "", ConfigFileFlag())
}
