package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/configloader"
	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatYAML = "yaml"

	// defaultSetName labels the marker list used for unlisted languages.
	defaultSetName = "default"
)

type markersFlags struct {
	format   string
	dialect  string
	language string
}

// markerInfo represents a marker in JSON output.
type markerInfo struct {
	Index int          `json:"index"`
	Shape marker.Shape `json:"shape"`
	marker.Spec
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// markerSetInfo is one language's marker list in JSON output.
type markerSetInfo struct {
	Set     string       `json:"set"`
	Dialect string       `json:"dialect"`
	Markers []markerInfo `json:"markers"`
}

func newMarkersCommand(globals *globalFlags) *cobra.Command {
	flags := &markersFlags{}

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List the effective marker pairs",
		Long: `List the marker pairs gofold would use after merging all configuration
layers: the default list, then each language with its own list. Each pair
shows its shape (literal or regex) and whether it compiles under the active
dialect; pairs that fail to compile are skipped when folding.

With --format yaml the merged configuration is printed instead, in the same
form "gofold init" writes, so it can be saved as a project config.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMarkers(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json, yaml")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "re2", "regex dialect to compile with: re2, ecmascript")
	cmd.Flags().StringVar(&flags.language, "language", "", "only show the list used for this language")

	return cmd
}

func runMarkers(cmd *cobra.Command, globals *globalFlags, flags *markersFlags) error {
	switch flags.format {
	case formatText, formatJSON, formatYAML:
	default:
		return usageErrorf("invalid --format %q: must be text, json or yaml", flags.format)
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("dialect") {
		cliCfg.Dialect = marker.Dialect(flags.dialect)
		if !cliCfg.Dialect.IsValid() {
			return usageErrorf("invalid --dialect %q: must be re2 or ecmascript", flags.dialect)
		}
	}

	ctx := commandContext(cmd)
	loadResult, _, err := loadConfig(ctx, globals, cliCfg)
	if err != nil {
		return err
	}

	if flags.format == formatYAML {
		return writeEffectiveConfig(cmd.OutOrStdout(), loadResult)
	}

	sets := describeMarkerSets(loadResult.Config, flags.language)

	if flags.format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(sets); err != nil {
			return fmt.Errorf("encoding markers: %w", err)
		}
		return nil
	}

	writeMarkerSets(cmd.OutOrStdout(), pretty.NewStyles(pretty.IsColorEnabled(globals.color, cmd.OutOrStdout())), sets)
	return nil
}

// writeEffectiveConfig prints the merged configuration as YAML, headed by
// the files it was loaded from.
func writeEffectiveConfig(w io.Writer, loadResult *configloader.LoadResult) error {
	sources := "built-in defaults"
	if len(loadResult.LoadedFrom) > 0 {
		sources = strings.Join(loadResult.LoadedFrom, ", ")
	}
	header := "# Effective gofold configuration\n# Loaded from: " + sources

	data, err := loadResult.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// describeMarkerSets compiles each effective marker list of cfg. With a
// language, only the list that language resolves to is described.
func describeMarkerSets(cfg *config.Config, language string) []markerSetInfo {
	compiler := marker.NewCompiler(cfg.EffectiveDialect())

	describe := func(name string, specs marker.Specs) markerSetInfo {
		set := markerSetInfo{
			Set:     name,
			Dialect: string(compiler.Dialect()),
			Markers: make([]markerInfo, 0, len(specs)),
		}
		for i, spec := range specs {
			info := markerInfo{Index: i, Shape: spec.Shape(), Spec: spec, Valid: true}
			if _, err := compiler.CompileSpec(spec); err != nil {
				info.Valid = false
				info.Error = err.Error()
			}
			set.Markers = append(set.Markers, info)
		}
		return set
	}

	if language != "" {
		return []markerSetInfo{describe(language, cfg.MarkersFor(language))}
	}

	sets := []markerSetInfo{describe(defaultSetName, cfg.MarkersFor(""))}
	for _, lang := range cfg.LanguageNames() {
		sets = append(sets, describe(lang, cfg.MarkersFor(lang)))
	}
	return sets
}

func writeMarkerSets(w io.Writer, styles *pretty.Styles, sets []markerSetInfo) {
	for i, set := range sets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", styles.Bold.Render(set.Set), styles.Dim.Render("("+set.Dialect+")"))

		if len(set.Markers) == 0 {
			fmt.Fprintln(w, "  "+styles.Dim.Render("folding disabled"))
			continue
		}

		for _, info := range set.Markers {
			status := styles.Success.Render("ok")
			if !info.Valid {
				status = styles.Error.Render("invalid: " + info.Error)
			}
			fmt.Fprintf(w, "  %s  %-7s  %s  %s\n",
				strconv.Itoa(info.Index),
				info.Shape,
				styles.Marker.Render(info.Spec.String()),
				status,
			)
		}
	}
}
