package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/mathfield/internal/config"
	"github.com/vango-dev/mathfield/internal/errors"
	"github.com/vango-dev/mathfield/pkg/mathfield"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

type classifyReport struct {
	Options     map[string]any    `json:"options" yaml:"options"`
	Passthrough map[string]any    `json:"passthrough" yaml:"passthrough"`
	Handlers    map[string]string `json:"handlers" yaml:"handlers"`
}

func classifyCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classify <props-file>",
		Short: "Show how props are split between options, attributes and handlers",
		Long: `Read a JSON or YAML props object and print the three partitions a
field applies it as: options pushed to the widget, attributes set on the
host element, and handler props mapped to their native events.

Examples:
  mathfield classify props.yaml
  mathfield classify --format=json props.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runClassify(ctx, cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func runClassify(ctx context.Context, w io.Writer, path, format string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("E500").WithDetailf("Cannot read %s.", path).Wrap(err)
	}
	var raw map[string]any
	if err := config.Unmarshal(path, data, &raw); err != nil {
		return errors.New("E500").WithDetailf("Cannot parse %s.", filepath.Base(path)).Wrap(err)
	}

	cls, err := mathfield.Classify(ctx, vdom.Props(raw))
	if err != nil {
		return err
	}

	report := classifyReport{
		Options:     cls.Options,
		Passthrough: cls.Passthrough,
		Handlers:    make(map[string]string, len(cls.Handled)),
	}
	for _, name := range cls.Handled {
		h, _ := mathfield.LookupHandler(name)
		report.Handlers[name] = h.Event()
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		writeSection(w, "options", report.Options)
		writeSection(w, "passthrough", report.Passthrough)
		handlers := make(map[string]any, len(report.Handlers))
		for k, v := range report.Handlers {
			handlers[k] = v
		}
		writeSection(w, "handlers", handlers)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeSection(w io.Writer, title string, values map[string]any) {
	fmt.Fprintf(w, "%s:\n", title)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %v\n", k, values[k])
	}
}
