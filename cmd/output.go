package cmd

import (
	"log/slog"

	"github.com/lepinkainen/openlibrary/internal/cmdutil"
	"github.com/lepinkainen/openlibrary/internal/config"
	"github.com/lepinkainen/openlibrary/internal/datastore"
	"github.com/lepinkainen/openlibrary/internal/fileutil"
	"github.com/lepinkainen/openlibrary/internal/openlibrary"
)

// emit writes the decoded payload and exports its docs when Datasette
// output is enabled.
func (g *Globals) emit(result *openlibrary.Result) error {
	var payload any = result.Record
	if result.Strategy == openlibrary.StrategyEnvelope {
		payload = result.Envelope
	}
	if err := g.write(payload); err != nil {
		return err
	}

	rows, err := datastore.DocRows(result)
	if err != nil {
		return err
	}
	return cmdutil.WriteToDatastore(rows, datastore.DocsSchema(datastore.DocsTable), datastore.DocsTable, "Open Library docs",
		func(row map[string]any) map[string]any { return row })
}

func (g *Globals) write(payload any) error {
	format := config.Current().OutputFormat

	if g.Out == "" {
		data, err := fileutil.Marshal(payload, format)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	written, err := fileutil.WriteOutputFile(payload, g.Out, format, g.Overwrite)
	if err != nil {
		return err
	}
	if !written {
		slog.Warn("Output file exists, pass --overwrite to replace it", "file", g.Out)
	}
	return nil
}
