package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/metal3d/dartreorder/ordering"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ReorderConfig holds the reorder command options. The yaml names are the
// flag names, so that the output of print-config is a valid config file.
type ReorderConfig struct {
	Write           bool     `yaml:"write"`
	Verbose         bool     `yaml:"verbose"`
	MakeDiff        bool     `yaml:"diff"`
	Check           bool     `yaml:"check"`
	Color           bool     `yaml:"color"`
	Jobs            int      `yaml:"jobs"`
	LogFile         string   `yaml:"log-file"`
	DefOrder        []string `yaml:"order"`
	GroupGetters    bool     `yaml:"group-getters"`
	SortMethods     bool     `yaml:"sort-methods"`
	SeparatePrivate bool     `yaml:"separate-private"`
}

// orderingConfig returns the engine configuration.
func (c *ReorderConfig) orderingConfig() ordering.Config {
	order := make([]ordering.Order, len(c.DefOrder))
	copy(order, c.DefOrder)
	return ordering.Config{
		MemberOrdering:            order,
		GroupAndSortGetterMethods: c.GroupGetters,
		SortOtherMethods:          c.SortMethods,
		SeparatePrivateMethods:    c.SeparatePrivate,
		Verbose:                   c.Verbose,
	}
}

func initializeViper(c *cobra.Command) error {
	v := viper.New()
	v.SetConfigName(".dartreorder")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	v.SetEnvPrefix("DARTREORDER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	bindFlags(c, v)
	return nil
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := f.Name
		if !f.Changed && v.IsSet(name) {
			// ensure that the value is with the correct type
			switch f.Value.Type() {
			case "stringSlice":
				cmd.Flags().Lookup(name).Value.Set(strings.Join(v.GetStringSlice(name), ","))
			default:
				cmd.Flags().Set(name, fmt.Sprintf("%v", v.GetString(name)))
			}
		}
	})
}

func printConfigFile(config *ReorderConfig, output ...io.Writer) error {
	var out io.Writer = os.Stdout
	if len(output) > 0 {
		out = output[0]
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	return enc.Encode(config)
}
