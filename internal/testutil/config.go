package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/openlibrary/internal/config"
)

// ResetConfig clears viper for the duration of the test and reloads the
// defaults again when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		config.InitConfig()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	host         string
	outputFormat string
	dbFile       string
	datasetteURL string
}

// WithHost points the Open Library client at a test server.
func WithHost(host string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.host = host
	}
}

// WithOutputFormat sets output.format.
func WithOutputFormat(format string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.outputFormat = format
	}
}

// WithDatasetteDB enables export into the given SQLite file.
func WithDatasetteDB(path string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.dbFile = path
	}
}

// WithDatasetteURL enables export to a remote Datasette instance.
func WithDatasetteURL(url string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.datasetteURL = url
	}
}

// SetTestConfig resets viper, applies defaults with rate limiting turned
// off and then the given options.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()
	ResetConfig(t)

	options := testConfigOptions{outputFormat: "json"}
	for _, opt := range opts {
		opt(&options)
	}

	viper.Set("openlibrary.ratelimit", 0)
	viper.Set("goodreads.ratelimit", 0)
	viper.Set("output.format", options.outputFormat)
	if options.host != "" {
		viper.Set("openlibrary.host", options.host)
		viper.Set("goodreads.host", options.host)
	}
	if options.dbFile != "" {
		viper.Set("datasette.enabled", true)
		viper.Set("datasette.dbfile", options.dbFile)
	}
	if options.datasetteURL != "" {
		viper.Set("datasette.enabled", true)
		viper.Set("datasette.url", options.datasetteURL)
	}
	config.InitConfig()
}
