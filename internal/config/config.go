// Package config holds the settings shared by every olib command.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/lepinkainen/openlibrary/internal/goodreads"
	"github.com/lepinkainen/openlibrary/internal/openlibrary"
)

// Config is a snapshot of the viper settings.
type Config struct {
	Host            string
	UserAgent       string
	RateLimit       int
	GoodreadsHost   string
	GoodreadsRate   int
	OutputFormat    string
	DatasetteOn     bool
	DatasetteDBFile string
	DatasetteURL    string
	DatasetteToken  string
	LogLevel        string
}

// Global configuration, loaded by InitConfig.
var current Config

// setDefaults registers the default value of every key.
func setDefaults() {
	viper.SetDefault("openlibrary.host", openlibrary.DefaultBaseURL)
	viper.SetDefault("openlibrary.useragent", openlibrary.DefaultUserAgent)
	viper.SetDefault("openlibrary.ratelimit", 1)
	viper.SetDefault("goodreads.host", goodreads.DefaultBaseURL)
	viper.SetDefault("goodreads.ratelimit", 1)
	viper.SetDefault("output.format", "json")
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.dbfile", "./olib.db")
	viper.SetDefault("datasette.url", "")
	viper.SetDefault("datasette.token", "")
	viper.SetDefault("log.level", "info")
}

// BindEnv makes OLIB_OPENLIBRARY_HOST and friends override config keys.
func BindEnv() {
	viper.SetEnvPrefix("olib")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// InitConfig registers the defaults and loads the global configuration
// from viper.
func InitConfig() {
	setDefaults()
	current = Load()
}

// Load reads the current viper values without touching the global copy.
func Load() Config {
	return Config{
		Host:            viper.GetString("openlibrary.host"),
		UserAgent:       viper.GetString("openlibrary.useragent"),
		RateLimit:       viper.GetInt("openlibrary.ratelimit"),
		GoodreadsHost:   viper.GetString("goodreads.host"),
		GoodreadsRate:   viper.GetInt("goodreads.ratelimit"),
		OutputFormat:    strings.ToLower(viper.GetString("output.format")),
		DatasetteOn:     viper.GetBool("datasette.enabled"),
		DatasetteDBFile: viper.GetString("datasette.dbfile"),
		DatasetteURL:    viper.GetString("datasette.url"),
		DatasetteToken:  viper.GetString("datasette.token"),
		LogLevel:        strings.ToLower(viper.GetString("log.level")),
	}
}

// Current returns the configuration loaded by InitConfig.
func Current() Config {
	return current
}

// SetHost overrides the Open Library host, e.g. from a command line flag.
func SetHost(host string) {
	if host == "" {
		return
	}
	viper.Set("openlibrary.host", host)
	current.Host = host
}

// SetDatasetteEnabled turns the datastore export on or off.
func SetDatasetteEnabled(enabled bool) {
	viper.Set("datasette.enabled", enabled)
	current.DatasetteOn = enabled
}

// SetDatasetteDBFile overrides the SQLite export file.
func SetDatasetteDBFile(path string) {
	if path == "" {
		return
	}
	viper.Set("datasette.dbfile", path)
	current.DatasetteDBFile = path
}

// SetOutputFormat overrides the output format.
func SetOutputFormat(format string) {
	if format == "" {
		return
	}
	viper.Set("output.format", format)
	current.OutputFormat = strings.ToLower(format)
}
