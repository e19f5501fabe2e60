package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	godeko "github.com/reoring/godeko"
	"github.com/reoring/godeko/json"
	"github.com/reoring/godeko/yaml"
)

func newCheckCmd() *cobra.Command {
	var (
		format   string
		dup      string
		maxDepth int
	)
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a JSON or YAML file and report every diagnostic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			source := string(data)

			f := format
			if f == "" {
				switch strings.ToLower(filepath.Ext(path)) {
				case ".yaml", ".yml":
					f = "yaml"
				default:
					f = "json"
				}
			}

			var diags godeko.Diagnostics
			switch f {
			case "json":
				sev, err := parseSeverity(dup)
				if err != nil {
					return err
				}
				result := json.Deserialize(source, godeko.Any(), json.Options{
					OnDuplicateKey: sev,
					MaxDepth:       maxDepth,
				})
				diags = result.Diagnostics()
			case "yaml":
				result := yaml.Deserialize(source, godeko.Any())
				diags = result.Diagnostics()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", f)
			}

			render(cmd.OutOrStdout(), path, source, diags)
			if diags.HasErrors() {
				return fmt.Errorf("%s: %d problem(s) found", path, len(diags))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: json or yaml (default: by file extension)")
	cmd.Flags().StringVar(&dup, "dup", "warn", "duplicate key handling: ignore, warn or error (json only)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth, 0 for unlimited (json only)")
	return cmd
}

func parseSeverity(s string) (godeko.Severity, error) {
	switch s {
	case "ignore":
		return godeko.Ignore, nil
	case "warn":
		return godeko.Warn, nil
	case "error":
		return godeko.Error, nil
	default:
		return godeko.Ignore, fmt.Errorf("unknown duplicate key policy %q", s)
	}
}
