package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "http://auth"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-a", "http://auth"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "names may be given with dashes",
			args:  []string{"-g", "http://gen"},
			names: []string{"-g"},
			want:  []string{"-g", "http://gen"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"generate", "-x", "1", "--y=2", "cafe"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag without value at the end is kept",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "next flag is not taken as value",
			args:  []string{"-c", "-l", "debug"},
			names: []string{"c", "l"},
			want:  []string{"-c", "-l", "debug"},
		},
		{
			name:  "repeated flag preserved in order",
			args:  []string{"-c", "one.json", "-c", "two.json"},
			names: []string{"c"},
			want:  []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:  "empty args",
			args:  nil,
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/etc/sitegen.json", ConfigPath([]string{"-c", "/etc/sitegen.json"}))
	})

	t.Run("long -config mixed with other flags", func(t *testing.T) {
		args := []string{"-a", "http://auth", "-config", "/tmp/c.json", "whoami"}
		assert.Equal(t, "/tmp/c.json", ConfigPath(args))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.json", ConfigPath([]string{"-c", "1.json", "--config=2.json"}))
	})
}

func TestSplitArgs(t *testing.T) {
	owned, rest := SplitArgs(
		[]string{"generate", "-g", "http://gen", "landing", "--help", "-cost=25", "page"},
		[]string{"g", "cost"},
	)
	assert.Equal(t, []string{"-g", "http://gen", "-cost=25"}, owned)
	assert.Equal(t, []string{"generate", "landing", "--help", "page"}, rest)
}

func TestSplitArgs_Empty(t *testing.T) {
	owned, rest := SplitArgs(nil, []string{"c"})
	assert.Empty(t, owned)
	assert.Empty(t, rest)
}
