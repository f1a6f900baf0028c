package diff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/application"
	"github.com/agentstation/delta/internal/document"
	"github.com/agentstation/delta/internal/output"
	"github.com/agentstation/delta/pkg/codec"
	"github.com/agentstation/delta/pkg/logging"
	"github.com/agentstation/delta/pkg/ordered"
	"github.com/agentstation/delta/pkg/types"
)

// settings are the flag values merged with the app configuration.
type settings struct {
	strategy  types.StrategyType
	explicit  bool
	algorithm ordered.Algorithm
	mode      types.MapMode
	format    output.Format
}

func resolve(cmd *cobra.Command, app application.Application, flags *Flags) (*settings, error) {
	s := &settings{}

	strategy := app.Strategy()
	if cmd.Flags().Changed("strategy") {
		strategy = flags.Strategy
		s.explicit = true
	}
	if strategy != "" {
		st, err := types.ParseStrategyType(strategy)
		if err != nil {
			return nil, err
		}
		s.strategy = st
	}

	algorithm := app.Algorithm()
	if flags.Algorithm != "" {
		algorithm = flags.Algorithm
	}
	alg, err := ordered.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	s.algorithm = alg

	mode := app.MapMode()
	if flags.MapMode != "" {
		mode = flags.MapMode
	}
	if s.mode, err = types.ParseMapMode(mode); err != nil {
		return nil, err
	}

	if _, err := output.ParseFormat(app.OutputFormat()); err != nil {
		return nil, err
	}
	s.format = output.DetectFormat(app.OutputFormat())
	if flags.Out != "" && s.format == output.FormatTable {
		s.format = output.FormatYAML
	}

	return s, nil
}

func run(cmd *cobra.Command, app application.Application, flags *Flags, existingPath, updatedPath string) error {
	s, err := resolve(cmd, app, flags)
	if err != nil {
		return err
	}

	existing, err := document.Load(existingPath)
	if err != nil {
		return err
	}
	updated, err := document.Load(updatedPath)
	if err != nil {
		return err
	}

	// A configured list strategy does not apply to maps; only an explicit flag is checked.
	strategy := s.strategy
	if existing.Kind == document.KindMap && !s.explicit {
		strategy = ""
	}

	patch, err := document.Compare(existing, updated, strategy, s.mode, ordered.WithAlgorithm(s.algorithm))
	if err != nil {
		return err
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithFile(ctx, "existing", existingPath)
	ctx = logging.WithFile(ctx, "updated", updatedPath)
	ctx = logging.WithStrategy(ctx, patch.Strategy.String())
	if patch.Strategy == types.StrategyOrderedArrayLike {
		ctx = logging.WithAlgorithm(ctx, s.algorithm.String())
	}
	logger := logging.FromContext(ctx)

	logger.Debug().
		Str("map_mode", s.mode.String()).
		Int("existing_items", existing.Len()).
		Int("updated_items", updated.Len()).
		Int("changes", patch.Len()).
		Msg("Computed changeset")

	if flags.Out == "" {
		if err := render(cmd.OutOrStdout(), s.format, patch); err != nil {
			return err
		}
		if s.format == output.FormatTable {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%d change(s), strategy %s\n", patch.Len(), patch.Strategy)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := render(&buf, s.format, patch); err != nil {
		return err
	}
	if err := document.WriteFile(flags.Out, buf.Bytes()); err != nil {
		return err
	}
	logger.Info().Str("path", flags.Out).Int("changes", patch.Len()).Msg("Wrote changeset")
	return nil
}

// render writes the patch in format. JSON and YAML use the structured codec
// so apply can read them back.
func render(w io.Writer, format output.Format, patch *document.Patch) error {
	switch format {
	case output.FormatJSON:
		data, err := codec.MarshalJSON(patch)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case output.FormatYAML:
		data, err := codec.MarshalYAML(patch)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case output.FormatBinary:
		data, err := patch.MarshalBinary()
		if err != nil {
			return err
		}
		return output.NewFormatter(output.FormatBinary).Format(w, data)
	default:
		if patch.IsEmpty() {
			_, err := fmt.Fprintln(w, "No changes detected")
			return err
		}
		return output.NewFormatter(output.FormatTable).Format(w, tableData(patch))
	}
}

func tableData(patch *document.Patch) output.Data {
	switch patch.Strategy {
	case types.StrategyOrderedArrayLike:
		return output.OrderedToTableData(patch.Ordered)
	case types.StrategyUnorderedArrayLike:
		return output.MultisetToTableData(patch.Multiset)
	default:
		return output.KeyedToTableData(patch.Keyed)
	}
}
