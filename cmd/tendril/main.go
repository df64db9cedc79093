package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tendril/config"
)

var version = "0.3.0"

// Persistent flags
var (
	configPath string
	overrides  []string
	seedFlag   uint64
	debugMode  bool
)

var logFile *os.File

func main() {
	if err := newRootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "tendril: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tendril",
		Short: "tendril - differential growth in the terminal",
		Long: brand.Sprint("tendril") + " - paths of nodes that attract, repel and split into organic growth\n" +
			subtle.Sprint("Runs interactively by default; render and stats run headless"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debugMode)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive()
		},
	}
	root.SetVersionTemplate("tendril {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringArrayVar(&overrides, "set", nil, "Override a config option, section.key=value (repeatable)")
	pf.Uint64Var(&seedFlag, "seed", 0, "Random seed, 0 for time-based")
	pf.BoolVar(&debugMode, "debug", false, "Write logs to "+logDir+"/"+logFileName)

	root.AddCommand(
		runCmd(),
		renderCmd(),
		statsCmd(),
		layoutsCmd(),
		optionsCmd(),
	)
	return root
}

// loadConfig reads the config file then applies --set and --seed
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetAll(overrides); err != nil {
		return nil, err
	}
	if seedFlag != 0 {
		cfg.Run.Seed = seedFlag
	}
	return cfg, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive simulation (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive()
		},
	}
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List option names accepted by --set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, o := range config.Options() {
				fmt.Fprintf(out, "  %s\n", o)
			}
		},
	}
}
