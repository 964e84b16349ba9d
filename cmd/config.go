package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/kil"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

// Config holds the settings shared by every command.
type Config struct {
	File     string `json:"file"`     // File is the inventory data file.
	Sort     string `json:"sort"`     // Sort is the default table order, e.g. "stock:desc".
	Currency string `json:"currency"` // Currency is the default unit cost currency.
	Verbose  bool   `json:"verbose"`
}

func defaultConfig() Config {
	return Config{File: "inventory.kildata", Sort: "insertion", Currency: "EUR"}
}

// LoadConfig returns the default configuration, overridden by the config
// file at path, if it exists, then by the environment.
func LoadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	c := defaultConfig()
	if err := c.readFile(path); err != nil {
		return c, err
	}
	if err := c.readEnv(lookup); err != nil {
		return c, err
	}
	return c, nil
}

// readFile merges a JSON with comments file into c.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read config file %q: %w", path, err)
	}
	data, err = hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid config file %q: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return nil
}

func (c *Config) readEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.File = v
	}
	if v, ok := lookup(EnvSort); ok && v != "" {
		c.Sort = v
	}
	if v, ok := lookup(EnvCurrency); ok && v != "" {
		c.Currency = v
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid $%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

func (c Config) validate() error {
	if err := kil.CheckExtension(c.File); err != nil {
		return fmt.Errorf("invalid data file: %w", err)
	}
	if _, err := kil.ParseSort(c.Sort); err != nil {
		return fmt.Errorf("invalid default sort: %w", err)
	}
	if _, err := kil.ParseMoney("0", c.Currency); err != nil {
		return fmt.Errorf("invalid default currency: %w", err)
	}
	return nil
}

// loadDotEnv loads the variables of a .env file, if any, into the
// environment. Variables already set are kept.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load %q: %w", path, err)
	}
	return nil
}
