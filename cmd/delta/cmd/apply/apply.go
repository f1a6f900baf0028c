package apply

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/application"
	"github.com/agentstation/delta/internal/document"
	"github.com/agentstation/delta/internal/output"
	"github.com/agentstation/delta/pkg/differ"
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/logging"
)

func run(cmd *cobra.Command, app application.Application, flags *Flags, docPath, patchPath string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithFile(ctx, "target", docPath)
	ctx = logging.WithFile(ctx, "patch", patchPath)

	only, err := differ.ParseApplyStrategy(flags.Only)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(app.OutputFormat()); err != nil {
		return err
	}
	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatBinary {
		return errors.NewValidationError("format", string(format), "documents are written as table, json or yaml")
	}
	if flags.Out != "" && format == output.FormatTable {
		format = output.FormatYAML
	}

	doc, err := document.Load(docPath)
	if err != nil {
		return err
	}
	patch, err := document.LoadPatch(patchPath, flags.PatchFormat)
	if err != nil {
		return err
	}

	filtered := patch.Filter(only)
	logger := logging.FromContext(logging.WithStrategy(ctx, patch.Strategy.String()))
	logger.Debug().
		Str("only", string(only)).
		Int("changes", patch.Len()).
		Int("applied", filtered.Len()).
		Msg("Applying changeset")

	result, err := filtered.Apply(doc)
	if err != nil {
		return err
	}

	if flags.Out == "" {
		return render(cmd.OutOrStdout(), format, result)
	}

	data, err := result.Marshal(string(format))
	if err != nil {
		return err
	}
	if err := document.WriteFile(flags.Out, data); err != nil {
		return err
	}
	logger.Info().Str("path", flags.Out).Int("size", result.Len()).Msg("Wrote document")
	return nil
}

func render(w io.Writer, format output.Format, doc *document.Document) error {
	if format != output.FormatTable {
		data, err := doc.Marshal(string(format))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return output.NewFormatter(format).Format(w, tableData(doc))
}

func tableData(doc *document.Document) output.Data {
	if doc.Kind == document.KindMap {
		rows := make([][]string, 0, len(doc.Entries))
		for _, e := range doc.Entries {
			rows = append(rows, []string{e.Key, e.Value})
		}
		return output.Data{Headers: []string{"Key", "Value"}, Rows: rows}
	}

	rows := make([][]string, 0, len(doc.Items))
	for i, item := range doc.Items {
		rows = append(rows, []string{strconv.Itoa(i), item})
	}
	return output.Data{
		Headers:         []string{"Index", "Value"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignRight, output.AlignLeft},
	}
}
