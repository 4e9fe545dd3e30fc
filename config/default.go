package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"skirmish/blob"
	"skirmish/log"

	"github.com/pkg/errors"
)

const ConfigFile = "config.toml"

var DefaultConfig = Config{
	LogLevel:  log.LevelWarn.String(),
	LogFormat: "text",
	Sessions: SessionsConfig{
		Dir:           "sessions",
		Suffix:        blob.DefaultSuffix,
		DefaultHealth: 5,
	},
	Index: IndexConfig{
		Enabled: true,
		Dir:     "db",
	},
	Display: DisplayConfig{
		ColumnWidth: 15,
		HealthGlyph: "♥",
	},
	Verify: VerifyConfig{
		Workers: 4,
	},
}

const defaultConfigTemplateText = `# skirmish Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
# The SKIRMISH_LOG_LEVEL environment variable takes precedence.
log_level = "{{.LogLevel}}"

# Sets the log format. Either "text" or "json".
log_format = "{{.LogFormat}}"

# Configures where sessions are stored.
[sessions]
  # Directory holding one file per session. Relative paths are
  # resolved against the home directory.
  dir = "{{.Sessions.Dir}}"
  # Suffix appended to every session file name.
  suffix = "{{.Sessions.Suffix}}"
  # Health given to new entities when none is specified.
  default_health = {{.Sessions.DefaultHealth}}

# Configures the session index, which records a checksum for every
# saved session so corruption is detected on load.
[index]
  enabled = {{.Index.Enabled}}
  # Relative paths are resolved against the home directory.
  dir = "{{.Index.Dir}}"

# Configures how sessions are rendered.
[display]
  # Width of each table column, in characters.
  column_width = {{.Display.ColumnWidth}}
  # Glyph repeated once per point of health when writing to a terminal.
  health_glyph = "{{.Display.HealthGlyph}}"

# Configures the verify command.
[verify]
  # Number of sessions decoded concurrently.
  workers = {{.Verify.Workers}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(filepath.Join(homeDir, ConfigFile), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(filepath.Join(homeDir, ConfigFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
