package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns resolved output settings", func(t *testing.T) {
		c := &Config{
			Target:  "./query",
			Package: "github.com/test/project/query",
			Header:  "// Custom header",
		}

		output := c.Output()

		assert.Equal(t, "./query", output.Target)
		assert.Equal(t, "github.com/test/project/query", output.Package)
		assert.Equal(t, "query", output.Name)
		assert.Equal(t, "// Custom header", output.Header)
	})

	t.Run("handles empty config", func(t *testing.T) {
		c := &Config{}

		output := c.Output()

		assert.Empty(t, output.Target)
		assert.Empty(t, output.Package)
		assert.Equal(t, "query", output.Name)
		assert.Equal(t, DefaultHeader, output.Header)
	})
}

func TestConfigPackageName(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"from package", Config{Package: "github.com/org/app/where", Target: "./other"}, "where"},
		{"from target", Config{Target: "internal/query"}, "query"},
		{"default", Config{}, "query"},
		{"dashed target", Config{Target: "out/gen-out"}, "genout"},
		{"numeric target", Config{Target: "/tmp/TestWriter/001"}, "query001"},
		{"dashed package", Config{Package: "example.com/app/query-v2"}, "queryv2"},
		{"upper case", Config{Target: "Models"}, "models"},
		{"keyword", Config{Target: "gen/type"}, "query"},
		{"no identifier runes", Config{Target: "--"}, "query"},
		{"root", Config{Target: "/"}, "query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.PackageName())
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var c *Config
	assert.Equal(t, "mysql", c.dialect())
	assert.NotNil(t, c.logger())

	c = &Config{Dialect: "postgres"}
	assert.Equal(t, "postgres", c.dialect())
}
