package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-turrets/internal/config"
)

var flagWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the configuration",
	Long: `Print the configuration turrets would use and where it came from.

With --write the configuration is saved to the XDG config directory
($XDG_CONFIG_HOME/turrets/turrets.yaml) as a starting point for edits.

Examples:
  turrets config
  turrets config --config ./my-turrets.yaml
  turrets config --write`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWrite, "write", false, "Save the configuration to the user config directory")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, source, err := config.LoadTurretsFrom(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagWrite {
		path, err := config.Save(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", path)
		return
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
