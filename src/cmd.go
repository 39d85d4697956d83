package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbose   bool
	listJSON  bool
	framerate float64
	workers   int
)

var rootCmd = &cobra.Command{
	Use:   "slidepod [directory]",
	Short: "A terminal image slideshow with background decoding",
	Long: `SlidePod shows the images of a directory one at a time in the terminal.

Images are decoded by a pool of background workers and cached, so moving
through a directory or playing it back at a fixed framerate never waits on
the disk once a frame has been decoded.

Examples:
  slidepod ~/Pictures
  slidepod --framerate 12 ./frames
  slidepod list ./frames`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "Print the files the viewer would show",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCommandConfig(cmd)
		if err != nil {
			return err
		}

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		dir = normalizeDir(dir)
		files, err := scanDirectory(dir, cfg.Extensions)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Directory string   `json:"directory"`
				Files     []string `json:"files"`
			}{dir, files})
		}

		tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		for i, name := range files {
			fmt.Fprintf(tw, "%d\t%s\n", i, name)
		}
		return tw.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.slidepod.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().Float64VarP(&framerate, "framerate", "f", DEFAULT_FRAMERATE, "playback framerate in frames per second")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", DEFAULT_WORKERS, "number of decode workers")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")

	rootCmd.AddCommand(listCmd, versionCmd)
}

// loadCommandConfig reads the configuration with cmd's flags layered on top
func loadCommandConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	for _, key := range []string{"framerate", "workers"} {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	return LoadConfig(v, cfgFile)
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}

	if err := setupLogging(cfg.LogPath, cfg.LogLevel, verbose); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLogging()

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	term, err := OpenTerminal(cfg.Backend)
	if err != nil {
		return err
	}
	defer term.Close()
	defer recoverCrash(term.Close)
	installCrashHandler(term.Close)

	app := createApp(cfg)
	if err := app.Init(dir, len(args) > 0, newUploader(term.Backend, term.Writer())); err != nil {
		return err
	}
	app.Run(term)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
