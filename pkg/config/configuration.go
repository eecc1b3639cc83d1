// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/table"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
	"github.com/matrixorigin/colstore/pkg/util/metric"
)

const (
	defaultDateTimeMode = "UnspecifiedLocal"
	defaultLocale       = "invariant"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultLogMaxSize   = 512

	EnvDateTimeMode    = "COLSTORE_DATETIME_MODE"
	EnvLocale          = "COLSTORE_LOCALE"
	EnvCaseSensitive   = "COLSTORE_CASE_SENSITIVE"
	EnvMinimumCapacity = "COLSTORE_MINIMUM_CAPACITY"
)

// StorageParameters are the defaults of tables built from the configuration.
type StorageParameters struct {
	//default is UnspecifiedLocal. Local, Unspecified, UnspecifiedLocal or Utc.
	DateTimeMode string `toml:"datetime-mode"`

	//default is invariant. a locale tag such as en-US or de-DE.
	Locale string `toml:"locale"`

	//default is false. compare strings case sensitively.
	CaseSensitive bool `toml:"case-sensitive"`

	//default is 0. records allocated up front.
	MinimumCapacity int `toml:"minimum-capacity"`
}

type Configuration struct {
	Storage StorageParameters `toml:"storage"`
	Log     logutil.LogConfig `toml:"log"`
}

// LoadConfigFromFile decodes the toml file at path, applies environment
// overrides and defaults, then validates the result.
func LoadConfigFromFile(path string) (*Configuration, error) {
	cfg := &Configuration{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, moerr.NewBadConfigNoCtx("%s: %v", path, err)
	}
	return cfg.finish(md)
}

// LoadConfig is LoadConfigFromFile for toml text.
func LoadConfig(data string) (*Configuration, error) {
	cfg := &Configuration{}
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, moerr.NewBadConfigNoCtx("%v", err)
	}
	return cfg.finish(md)
}

func (c *Configuration) finish(md toml.MetaData) (*Configuration, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, moerr.NewBadConfigNoCtx("unknown keys %s", strings.Join(keys, ", "))
	}
	c.applyEnv()
	c.SetDefaultValues()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) applyEnv() {
	sp := &c.Storage
	sp.DateTimeMode = metric.EnvOrDefaultString(EnvDateTimeMode, sp.DateTimeMode)
	sp.Locale = metric.EnvOrDefaultString(EnvLocale, sp.Locale)
	switch metric.EnvOrDefaultBool(EnvCaseSensitive, -1) {
	case 0:
		sp.CaseSensitive = false
	case 1:
		sp.CaseSensitive = true
	}
	sp.MinimumCapacity = int(metric.EnvOrDefaultInt(EnvMinimumCapacity, int64(sp.MinimumCapacity)))
}

// SetDefaultValues fills the fields left empty.
func (c *Configuration) SetDefaultValues() {
	if c.Storage.DateTimeMode == "" {
		c.Storage.DateTimeMode = defaultDateTimeMode
	}
	if c.Storage.Locale == "" {
		c.Storage.Locale = defaultLocale
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = defaultLogMaxSize
	}
}

func (c *Configuration) Validate() error {
	if _, err := c.Storage.TableOptions(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfigNoCtx("unsupported log format %s", c.Log.Format)
	}
	return nil
}

// TableOptions turns the parameters into the options of a new table.
func (sp *StorageParameters) TableOptions() (table.Options, error) {
	mode, err := types.ParseDateTimeMode(sp.DateTimeMode)
	if err != nil {
		return table.Options{}, moerr.NewBadConfigNoCtx("datetime-mode: %v", err)
	}
	loc := types.InvariantLocale
	if sp.Locale != "" && !strings.EqualFold(sp.Locale, defaultLocale) {
		if loc, err = types.LocaleFor(sp.Locale); err != nil {
			return table.Options{}, moerr.NewBadConfigNoCtx("locale: %v", err)
		}
	}
	if sp.MinimumCapacity < 0 {
		return table.Options{}, moerr.NewBadConfigNoCtx("minimum-capacity %d is negative", sp.MinimumCapacity)
	}
	return table.Options{
		Locale:          loc,
		CaseSensitive:   sp.CaseSensitive,
		DateTimeMode:    mode,
		MinimumCapacity: sp.MinimumCapacity,
	}, nil
}

// NewTable creates an empty table named name with the configured options.
func (c *Configuration) NewTable(name string) (*table.Table, error) {
	opts, err := c.Storage.TableOptions()
	if err != nil {
		return nil, err
	}
	return table.New(name, opts), nil
}
