// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Handler constructor arguments used by the host and CloudWatch handlers.
const (
	ArgBaseLogFolder      = "base_log_folder"
	ArgLogGroupARN        = "log_group_arn"
	ArgKMSKeyARN          = "kms_key_arn"
	ArgEnabled            = "enabled"
	ArgStreamName         = "stream_name"
	ArgStreamNameTemplate = "stream_name_template"
	ArgStreamNamePrefix   = "stream_name_prefix"
	ArgLogsSource         = "logs_source"
	ArgStream             = "stream"
	ArgFilenameTemplate   = "filename_template"
	ArgFilename           = "filename"
	ArgMode               = "mode"
	ArgMaxBytes           = "maxBytes"
	ArgBackupCount        = "backupCount"
)

const (
	keyClass     = "class"
	keyFormatter = "formatter"
	keyFilters   = "filters"
)

// Config is a dictionary logging configuration as consumed by the host
// framework's logging setup.
type Config struct {
	Version                int                   `json:"version" yaml:"version"`
	DisableExistingLoggers bool                  `json:"disable_existing_loggers" yaml:"disable_existing_loggers"`
	Formatters             map[string]*Formatter `json:"formatters" yaml:"formatters"`
	Filters                map[string]*Filter    `json:"filters" yaml:"filters"`
	Handlers               map[string]*Handler   `json:"handlers" yaml:"handlers"`
	Loggers                map[string]*Logger    `json:"loggers" yaml:"loggers"`
	Root                   *RootLogger           `json:"root,omitempty" yaml:"root,omitempty"`
}

type Formatter struct {
	Class  string `json:"class,omitempty" yaml:"class,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Filter is instantiated by calling Factory, which is why it serialises under "()".
type Filter struct {
	Factory string `json:"()" yaml:"()"`
}

// Handler is a handler definition. Args holds the constructor keyword
// arguments and is serialised flattened next to class, formatter and filters.
// A nil Args value serialises as null.
type Handler struct {
	Class     string
	Formatter string
	Filters   []string
	Args      map[string]interface{}
}

type Logger struct {
	Handlers  []string `json:"handlers" yaml:"handlers"`
	Level     string   `json:"level,omitempty" yaml:"level,omitempty"`
	Propagate bool     `json:"propagate" yaml:"propagate"`
	Filters   []string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

type RootLogger struct {
	Handlers []string `json:"handlers" yaml:"handlers"`
	Level    string   `json:"level,omitempty" yaml:"level,omitempty"`
	Filters  []string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// New returns an empty version 1 configuration
func New() *Config {
	return &Config{
		Version:    1,
		Formatters: map[string]*Formatter{},
		Filters:    map[string]*Filter{},
		Handlers:   map[string]*Handler{},
		Loggers:    map[string]*Logger{},
	}
}

// StringArg returns a string constructor argument
func (h *Handler) StringArg(key string) (string, bool) {
	v, ok := h.Args[key].(string)
	return v, ok
}

// BoolArg returns a boolean constructor argument
func (h *Handler) BoolArg(key string) (bool, bool) {
	v, ok := h.Args[key].(bool)
	return v, ok
}

func (h *Handler) asMap() map[string]interface{} {
	m := make(map[string]interface{}, len(h.Args)+3)
	for k, v := range h.Args {
		m[k] = v
	}
	m[keyClass] = h.Class
	if h.Formatter != "" {
		m[keyFormatter] = h.Formatter
	}
	if h.Filters != nil {
		m[keyFilters] = h.Filters
	}
	return m
}

// MarshalJSON flattens Args into the handler object
func (h *Handler) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.asMap())
}

// MarshalYAML flattens Args into the handler mapping
func (h *Handler) MarshalYAML() (interface{}, error) {
	return h.asMap(), nil
}

// UnmarshalJSON splits a flattened handler object back into its fixed keys and Args
func (h *Handler) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*h = Handler{Args: map[string]interface{}{}}
	for k, v := range raw {
		var err error
		switch k {
		case keyClass:
			err = json.Unmarshal(v, &h.Class)
		case keyFormatter:
			err = json.Unmarshal(v, &h.Formatter)
		case keyFilters:
			err = json.Unmarshal(v, &h.Filters)
		default:
			var arg interface{}
			err = json.Unmarshal(v, &arg)
			h.Args[k] = arg
		}
		if err != nil {
			return errors.Wrapf(err, "decoding handler key %q", k)
		}
	}
	return nil
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := &Config{
		Version:                c.Version,
		DisableExistingLoggers: c.DisableExistingLoggers,
		Formatters:             make(map[string]*Formatter, len(c.Formatters)),
		Filters:                make(map[string]*Filter, len(c.Filters)),
		Handlers:               make(map[string]*Handler, len(c.Handlers)),
		Loggers:                make(map[string]*Logger, len(c.Loggers)),
	}
	for name, f := range c.Formatters {
		fc := *f
		clone.Formatters[name] = &fc
	}
	for name, f := range c.Filters {
		fc := *f
		clone.Filters[name] = &fc
	}
	for name, h := range c.Handlers {
		hc := &Handler{
			Class:     h.Class,
			Formatter: h.Formatter,
			Filters:   copyStrings(h.Filters),
		}
		if h.Args != nil {
			hc.Args = make(map[string]interface{}, len(h.Args))
			for k, v := range h.Args {
				hc.Args[k] = v
			}
		}
		clone.Handlers[name] = hc
	}
	for name, l := range c.Loggers {
		clone.Loggers[name] = &Logger{
			Handlers:  copyStrings(l.Handlers),
			Level:     l.Level,
			Propagate: l.Propagate,
			Filters:   copyStrings(l.Filters),
		}
	}
	if c.Root != nil {
		clone.Root = &RootLogger{
			Handlers: copyStrings(c.Root.Handlers),
			Level:    c.Root.Level,
			Filters:  copyStrings(c.Root.Filters),
		}
	}
	return clone
}
