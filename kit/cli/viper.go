package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ConfigPathKey is the viper key (and, prefixed, the env var) naming a
// config file or a directory holding config.{json,toml,yaml,yml}.
const ConfigPathKey = "config-path"

// Opt is a single command-line option
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
}

// Program parses CLI options
type Program struct {
	// Run is invoked by cobra on execute.
	Run func() error
	// Name is the name of the program in help usage and the env var prefix.
	Name string
	// Opts are the command line/env var options to the program
	Opts []Opt
}

// NewCommand creates a new cobra command to be executed that respects env vars
// and an optional config file.
//
// Uses the upper-case version of the program's name as a prefix
// to all environment variables. The config file is taken from
// <NAME>_CONFIG_PATH when set.
//
// Precedence is flag, then env var, then config file, then default.
func NewCommand(v *viper.Viper, p *Program) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:  p.Name,
		Args: cobra.NoArgs,
	}
	if p.Run != nil {
		cmd.RunE = func(_ *cobra.Command, _ []string) error {
			return p.Run()
		}
	}

	v.SetEnvPrefix(strings.ToUpper(p.Name))
	v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := initializeConfig(v); err != nil {
		return nil, err
	}

	if err := BindOptions(v, cmd, p.Opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

func initializeConfig(v *viper.Viper) error {
	configPath := v.GetString(ConfigPathKey)
	if configPath == "" {
		return nil
	}

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json", ".toml", ".yaml", ".yml":
		v.SetConfigFile(configPath)
	default:
		// Search the directory for config.json, config.toml, config.yaml
		// and config.yml, in that order.
		v.SetConfigName("config")
		v.AddConfigPath(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load config from %q: %w", configPath, err)
	}
	return nil
}

// BindOptions adds opts to the specified command and automatically
// registers those options with viper.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) error {
	for _, o := range opts {
		flags := cmd.Flags()
		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			flags.StringVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetString(o.Flag)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			flags.IntVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetInt(o.Flag)
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			flags.BoolVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetBool(o.Flag)
		case *[]string:
			var d []string
			if o.Default != nil {
				d = o.Default.([]string)
			}
			flags.StringSliceVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetStringSlice(o.Flag)
		case *zapcore.Level:
			var d zapcore.Level
			if o.Default != nil {
				d = o.Default.(zapcore.Level)
			}
			LevelVar(flags, destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			if s := v.GetString(o.Flag); s != "" {
				if err := destP.Set(s); err != nil {
					return fmt.Errorf("%s: %w", o.Flag, err)
				}
			}
		case pflag.Value:
			if o.Default != nil {
				if err := destP.Set(fmt.Sprint(o.Default)); err != nil {
					return fmt.Errorf("%s: %w", o.Flag, err)
				}
			}
			flags.Var(destP, o.Flag, o.Desc)
			if err := v.BindPFlag(o.Flag, flags.Lookup(o.Flag)); err != nil {
				return err
			}
			if v.IsSet(o.Flag) {
				if err := destP.Set(v.GetString(o.Flag)); err != nil {
					return fmt.Errorf("%s: %w", o.Flag, err)
				}
			}
		default:
			return fmt.Errorf("unknown destination type %T for flag %q", o.DestP, o.Flag)
		}
	}
	return nil
}
