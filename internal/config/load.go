package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/gnarm/flycatcher-medoo/internal/datasource"
)

// Load reads and decodes a job file. Unknown fields are rejected, data file
// paths other than URLs are made relative to the job file, and defaults are applied. Load
// does not validate; call Validate on the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	c, err := Decode(b)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}

	base := filepath.Dir(path)
	for i := range c.Data {
		p := c.Data[i].Path
		if p != "" && !filepath.IsAbs(p) && !datasource.IsURL(p) {
			c.Data[i].Path = filepath.Join(base, p)
		}
	}
	return c, nil
}

// Decode parses a job document and applies defaults.
func Decode(b []byte) (Config, error) {
	var c Config
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode")
	}
	applyDefaults(&c)
	return c, nil
}

// LoadStorageINI overrides s with the keys present in the [storage] section
// of an INI file, so credentials can live outside the job file:
//
//	[storage]
//	kind   = postgres
//	dsn    = postgres://app:secret@db:5432/app
//	schema = public
//
// Keys that are absent leave s unchanged; unknown keys are an error.
func LoadStorageINI(path string, s *Storage) error {
	f, err := ini.Load(path)
	if err != nil {
		return errors.Wrap(err, "config: load ini")
	}
	sec, err := f.GetSection("storage")
	if err != nil {
		return errors.Wrapf(err, "config: %s", path)
	}
	for _, key := range sec.Keys() {
		v := strings.TrimSpace(key.String())
		switch strings.ToLower(key.Name()) {
		case "kind":
			s.Kind = v
		case "dsn":
			s.DSN = v
		case "schema":
			s.Schema = v
		default:
			return errors.Errorf("config: %s: section storage has unknown key %q", path, key.Name())
		}
	}
	return nil
}

func applyDefaults(c *Config) {
	c.Storage.Kind = strings.ToLower(strings.TrimSpace(c.Storage.Kind))
	if c.Metrics.Backend == "" {
		c.Metrics.Backend = "none"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Data {
		c.Data[i].Format = c.Data[i].ResolvedFormat()
	}
	for i := range c.Tables {
		if c.Tables[i].Options == nil {
			c.Tables[i].Options = Options{}
		}
	}
}
