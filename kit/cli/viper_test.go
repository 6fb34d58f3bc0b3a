package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type customFlag bool

func (c customFlag) String() string {
	if c {
		return "on"
	}
	return "off"
}

func (c *customFlag) Set(s string) error {
	*c = s == "on"
	return nil
}

func (c *customFlag) Type() string {
	return "fancy-bool"
}

func Test_NewProgram(t *testing.T) {
	config := map[string]interface{}{
		// config values should be same as flags
		"text-ext":  ".text",
		"lyric-ext": ".lyric",
		"verbose":   true,
		"log-level": "debug",
	}

	tests := []struct {
		name      string
		envVarVal string
		args      []string
		expected  string
	}{
		{
			name:     "no vals reads from config",
			expected: ".text",
		},
		{
			name:      "reads from env var",
			envVarVal: ".env",
			expected:  ".env",
		},
		{
			name:     "reads from flag",
			args:     []string{"--text-ext=.flag"},
			expected: ".flag",
		},
		{
			name:      "flag has highest precedence",
			envVarVal: ".env",
			args:      []string{"--text-ext=.flag"},
			expected:  ".flag",
		},
	}

	for _, tt := range tests {
		for _, writer := range configWriters {
			fn := func(t *testing.T) {
				testDir := t.TempDir()

				confFile, err := writer.writeFn(testDir, config)
				require.NoError(t, err)

				t.Setenv("TEST_CONFIG_PATH", confFile)
				if tt.envVarVal != "" {
					t.Setenv("TEST_TEXT_EXT", tt.envVarVal)
				}

				var textExt, lyricExt string
				var verbose bool
				var logLevel zapcore.Level
				program := &Program{
					Name: "test",
					Opts: []Opt{
						{DestP: &textExt, Flag: "text-ext", Default: ".txt"},
						{DestP: &lyricExt, Flag: "lyric-ext", Default: ".lrc"},
						{DestP: &verbose, Flag: "verbose"},
						{DestP: &logLevel, Flag: "log-level", Default: zapcore.InfoLevel},
					},
					Run: func() error { return nil },
				}

				cmd, err := NewCommand(viper.New(), program)
				require.NoError(t, err)
				cmd.SetArgs(append([]string{}, tt.args...))
				require.NoError(t, cmd.Execute())

				require.Equal(t, tt.expected, textExt)
				assert.Equal(t, ".lyric", lyricExt)
				assert.True(t, verbose)
				assert.Equal(t, zapcore.DebugLevel, logLevel)
			}

			t.Run(fmt.Sprintf("%s_%s", tt.name, writer.ext), fn)
		}
	}
}

func Test_Defaults(t *testing.T) {
	var textExt string
	var count int
	var exts []string
	var fancy customFlag
	var logLevel zapcore.Level
	program := &Program{
		Name: "test",
		Opts: []Opt{
			{DestP: &textExt, Flag: "text-ext", Default: ".txt"},
			{DestP: &count, Flag: "count", Default: 3},
			{DestP: &exts, Flag: "exts", Default: []string{".txt", ".lrc"}},
			{DestP: &fancy, Flag: "fancy-bool", Default: "on"},
			{DestP: &logLevel, Flag: "log-level", Default: zapcore.WarnLevel},
		},
		Run: func() error { return nil },
	}

	cmd, err := NewCommand(viper.New(), program)
	require.NoError(t, err)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	require.Equal(t, ".txt", textExt)
	require.Equal(t, 3, count)
	require.Equal(t, []string{".txt", ".lrc"}, exts)
	require.Equal(t, customFlag(true), fancy)
	require.Equal(t, zapcore.WarnLevel, logLevel)
}

func Test_LevelFlag(t *testing.T) {
	var logLevel zapcore.Level
	program := &Program{
		Name: "test",
		Opts: []Opt{{DestP: &logLevel, Flag: "log-level", Default: zapcore.InfoLevel}},
		Run:  func() error { return nil },
	}

	cmd, err := NewCommand(viper.New(), program)
	require.NoError(t, err)

	cmd.SetArgs([]string{"--log-level=error"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, zapcore.ErrorLevel, logLevel)

	cmd.SetArgs([]string{"--log-level=loud"})
	require.Error(t, cmd.Execute())
}

func Test_UnknownDestination(t *testing.T) {
	var f float64
	program := &Program{
		Name: "test",
		Opts: []Opt{{DestP: &f, Flag: "ratio"}},
	}
	_, err := NewCommand(viper.New(), program)
	require.Error(t, err)
}

type configWriter func(dir string, config interface{}) (string, error)
type labeledWriter struct {
	ext     string
	writeFn configWriter
}

var configWriters = []labeledWriter{
	{ext: "json", writeFn: writeJsonConfig},
	{ext: "toml", writeFn: writeTomlConfig},
	{ext: "yml", writeFn: yamlConfigWriter(true)},
	{ext: "yaml", writeFn: yamlConfigWriter(false)},
}

func writeJsonConfig(dir string, config interface{}) (string, error) {
	b, err := json.Marshal(config)
	if err != nil {
		return "", err
	}
	confFile := filepath.Join(dir, "config.json")
	if err := os.WriteFile(confFile, b, 0o644); err != nil {
		return "", err
	}
	return confFile, nil
}

func writeTomlConfig(dir string, config interface{}) (string, error) {
	confFile := filepath.Join(dir, "config.toml")
	w, err := os.OpenFile(confFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer w.Close()

	if err := toml.NewEncoder(w).Encode(config); err != nil {
		return "", err
	}

	return confFile, nil
}

func yamlConfigWriter(shortExt bool) configWriter {
	fileName := "config.yaml"
	if shortExt {
		fileName = "config.yml"
	}

	return func(dir string, config interface{}) (string, error) {
		confFile := filepath.Join(dir, fileName)
		w, err := os.OpenFile(confFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return "", err
		}
		defer w.Close()

		if err := yaml.NewEncoder(w).Encode(config); err != nil {
			return "", err
		}

		return confFile, nil
	}
}

func Test_ConfigPrecedence(t *testing.T) {
	jsonConfig := map[string]interface{}{"log-level": "debug"}
	tomlConfig := map[string]interface{}{"log-level": "info"}
	yamlConfig := map[string]interface{}{"log-level": "warn"}
	ymlConfig := map[string]interface{}{"log-level": "error"}

	tests := []struct {
		name          string
		writeJson     bool
		writeToml     bool
		writeYaml     bool
		writeYml      bool
		expectedLevel zapcore.Level
	}{
		{
			name:          "JSON is used if present",
			writeJson:     true,
			writeToml:     true,
			writeYaml:     true,
			writeYml:      true,
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "TOML is used if no JSON present",
			writeToml:     true,
			writeYaml:     true,
			writeYml:      true,
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "YAML is used if no JSON or TOML present",
			writeYaml:     true,
			writeYml:      true,
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "YML is used if no other option present",
			writeYml:      true,
			expectedLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := t.TempDir()
			t.Setenv("TEST_CONFIG_PATH", testDir)

			if tt.writeJson {
				_, err := writeJsonConfig(testDir, jsonConfig)
				require.NoError(t, err)
			}
			if tt.writeToml {
				_, err := writeTomlConfig(testDir, tomlConfig)
				require.NoError(t, err)
			}
			if tt.writeYaml {
				_, err := yamlConfigWriter(false)(testDir, yamlConfig)
				require.NoError(t, err)
			}
			if tt.writeYml {
				_, err := yamlConfigWriter(true)(testDir, ymlConfig)
				require.NoError(t, err)
			}

			var logLevel zapcore.Level
			program := &Program{
				Name: "test",
				Opts: []Opt{{DestP: &logLevel, Flag: "log-level", Default: zapcore.FatalLevel}},
				Run:  func() error { return nil },
			}

			cmd, err := NewCommand(viper.New(), program)
			require.NoError(t, err)
			cmd.SetArgs([]string{})
			require.NoError(t, cmd.Execute())

			require.Equal(t, tt.expectedLevel, logLevel)
		})
	}
}

func Test_ConfigPathDotDirectory(t *testing.T) {
	testDir := t.TempDir()

	tests := []struct {
		name string
		dir  string
	}{
		{name: "dot at start", dir: ".directory"},
		{name: "dot in middle", dir: "config.d"},
		{name: "dot at end", dir: "forgotmyextension."},
	}

	config := map[string]string{"text-ext": ".text"}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			configDir := filepath.Join(testDir, tc.dir)
			require.NoError(t, os.Mkdir(configDir, 0o700))

			_, err := writeTomlConfig(configDir, config)
			require.NoError(t, err)
			t.Setenv("TEST_CONFIG_PATH", configDir)

			var textExt string
			program := &Program{
				Name: "test",
				Opts: []Opt{{DestP: &textExt, Flag: "text-ext"}},
				Run:  func() error { return nil },
			}

			cmd, err := NewCommand(viper.New(), program)
			require.NoError(t, err)
			cmd.SetArgs([]string{})
			require.NoError(t, cmd.Execute())

			require.Equal(t, ".text", textExt)
		})
	}
}

func Test_ConfigPathMissingFile(t *testing.T) {
	t.Setenv("TEST_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.toml"))

	var textExt string
	_, err := NewCommand(viper.New(), &Program{
		Name: "test",
		Opts: []Opt{{DestP: &textExt, Flag: "text-ext"}},
	})
	require.Error(t, err)
}
