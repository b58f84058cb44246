// Package cli implements floatprobe, a diagnostics tool for the overlay
// engine: it evaluates hit-tests offline and drives the engine against any
// window on the desktop.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"floatpane/internal/config"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type options struct {
	format     Format
	configPath string
	out        io.Writer
}

// NewRootCommand builds the floatprobe command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:           "floatprobe",
		Short:         "Inspect overlay hit-testing and click-through behavior",
		Long:          "floatprobe evaluates the overlay hit-test rules and runs the interaction engine against a window found by title.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	var format string
	root.PersistentFlags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.floatpane/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch Format(format) {
		case FormatYAML, FormatJSON:
			opts.format = Format(format)
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}

	root.AddCommand(
		newHitCommand(opts),
		newSampleCommand(opts),
		newWatchCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs floatprobe with os.Args.
func Execute() {
	root := NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *options) loadConfig() (*config.Service, error) {
	if o.configPath != "" {
		return config.Open(o.configPath)
	}
	return config.New()
}

// print writes v in the selected format.
func (o *options) print(v any) error {
	return encode(o.out, o.format, v)
}

func encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	}
}
