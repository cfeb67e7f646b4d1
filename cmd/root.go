package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/openlibrary/internal/config"
	"github.com/lepinkainen/openlibrary/internal/errors"
	"github.com/lepinkainen/openlibrary/internal/fileutil"
)

var stdout io.Writer = os.Stdout

// Globals are the flags shared by every command
type Globals struct {
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	Host        string `help:"Open Library host (overrides openlibrary.host)"`
	Format      string `short:"F" help:"Output format: json or yaml (overrides output.format)"`
	Out         string `short:"o" help:"Write output to this file instead of stdout"`
	Overwrite   bool   `help:"Overwrite the --out file if it already exists"`
	DryRun      bool   `help:"Print the request URL without sending it"`
	Datasette   bool   `help:"Export returned docs to SQLite or Datasette"`
	DatasetteDB string `help:"Path to SQLite database file (overrides datasette.dbfile)"`
}

// CLI represents the complete command structure for the olib application
type CLI struct {
	Globals

	Work        WorkCmd        `cmd:"" help:"Fetch a work by ID"`
	Edition     EditionCmd     `cmd:"" help:"Fetch an edition by ID"`
	ISBN        ISBNCmd        `cmd:"" name:"isbn" help:"Fetch an edition by ISBN"`
	Books       BooksCmd       `cmd:"" help:"Look up several books by bibkey (ISBN:, OCLC:, LCCN:, OLID:)"`
	Author      AuthorCmd      `cmd:"" help:"Fetch an author by ID"`
	AuthorWorks AuthorWorksCmd `cmd:"" name:"author-works" help:"List the works of an author"`
	Subject     SubjectCmd     `cmd:"" help:"List the works filed under a subject"`
	Search      SearchCmd      `cmd:"" help:"Search books, authors, subjects or lists"`
	Goodreads   GoodreadsCmd   `cmd:"" help:"Find Goodreads book IDs for a search term"`
}

func options(ctx context.Context) []kong.Option {
	return []kong.Option{
		kong.Name("olib"),
		kong.Description("Query the Open Library API from the command line."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	parser := kong.Must(&cli, options(ctx)...)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
	initLogging(cli.Verbose)

	err = runCommand(kctx, &cli)
	if errors.IsStopProcessingError(err) {
		slog.Info("Stopped", "reason", err)
		return
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func runCommand(kctx *kong.Context, cli *CLI) error {
	if err := applyFlags(&cli.Globals); err != nil {
		return err
	}
	return kctx.Run(&cli.Globals)
}

func initConfig() error {
	config.BindEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	config.InitConfig()
	return nil
}

// applyFlags lets command line flags override the loaded configuration.
func applyFlags(g *Globals) error {
	if g.Format != "" {
		format, err := fileutil.ParseFormat(g.Format)
		if err != nil {
			return err
		}
		config.SetOutputFormat(format)
	}
	config.SetHost(g.Host)

	if g.Datasette {
		config.SetDatasetteEnabled(true)
	}
	config.SetDatasetteDBFile(g.DatasetteDB)
	return nil
}

func logLevel(verbose bool, configured string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(configured))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func initLogging(verbose bool) {
	// stdout carries command output
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: logLevel(verbose, config.Current().LogLevel),
	})

	slog.SetDefault(slog.New(handler))
}

func printURL(url string) error {
	_, err := fmt.Fprintln(stdout, url)
	return err
}
