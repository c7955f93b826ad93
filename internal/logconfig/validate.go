// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"fmt"
	"sort"
)

// Level names the host logging system accepts. Lower-case names are rejected there.
var knownLevels = map[string]bool{
	"CRITICAL": true,
	"FATAL":    true,
	"ERROR":    true,
	"WARN":     true,
	"WARNING":  true,
	"INFO":     true,
	"DEBUG":    true,
	"NOTSET":   true,
}

// IsKnownLevel reports whether level is a level name the host accepts
func IsKnownLevel(level string) bool {
	return knownLevels[level]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type validator struct {
	cfg      *Config
	problems []Problem
}

func (v *validator) add(errorType ErrorType, path, format string, args ...interface{}) {
	v.problems = append(v.problems, Problem{Type: errorType, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) checkHandlerRefs(path string, handlers []string) {
	for _, name := range handlers {
		if _, ok := v.cfg.Handlers[name]; !ok {
			v.add(UnknownHandler, path, "handler %q is not defined", name)
		}
	}
}

func (v *validator) checkFilterRefs(path string, filters []string) {
	for _, name := range filters {
		if _, ok := v.cfg.Filters[name]; !ok {
			v.add(UnknownFilter, path, "filter %q is not defined", name)
		}
	}
}

func (v *validator) checkLevel(path, level string) {
	if level != "" && !IsKnownLevel(level) {
		v.add(InvalidLogLevel, path, "level %q is not a known level name", level)
	}
}

func (v *validator) checkCloudWatchHandler(path string, h *Handler) {
	groupARN, ok := h.StringArg(ArgLogGroupARN)
	if !ok {
		v.add(InvalidLogGroupARN, path, "%s must be a string", ArgLogGroupARN)
	} else if _, err := ParseLogGroupARN(groupARN); err != nil {
		v.add(InvalidLogGroupARN, path, "%v", err)
	}

	if raw, present := h.Args[ArgKMSKeyARN]; present && raw != nil {
		if keyARN, ok := raw.(string); !ok {
			v.add(InvalidKMSKeyARN, path, "%s must be a string or null", ArgKMSKeyARN)
		} else if _, err := ParseKMSKeyARN(keyARN); err != nil {
			v.add(InvalidKMSKeyARN, path, "%v", err)
		}
	}

	if _, ok := h.BoolArg(ArgEnabled); !ok {
		v.add(InvalidHandlerArgument, path, "%s must be a boolean", ArgEnabled)
	}
}

// Validate checks that every reference in the configuration resolves and
// that the CloudWatch handlers carry usable arguments. All problems are
// returned together in a *ValidationError.
func Validate(cfg *Config) error {
	v := &validator{cfg: cfg}

	for _, name := range sortedKeys(cfg.Handlers) {
		h := cfg.Handlers[name]
		path := "handlers." + name
		if h.Formatter != "" {
			if _, ok := cfg.Formatters[h.Formatter]; !ok {
				v.add(UnknownFormatter, path, "formatter %q is not defined", h.Formatter)
			}
		}
		v.checkFilterRefs(path, h.Filters)
		if IsCloudWatchHandlerClass(h.Class) {
			v.checkCloudWatchHandler(path, h)
		}
	}

	for _, name := range sortedKeys(cfg.Loggers) {
		l := cfg.Loggers[name]
		path := "loggers." + name
		v.checkHandlerRefs(path, l.Handlers)
		v.checkFilterRefs(path, l.Filters)
		v.checkLevel(path, l.Level)
	}

	if cfg.Root != nil {
		v.checkHandlerRefs("root", cfg.Root.Handlers)
		v.checkFilterRefs("root", cfg.Root.Filters)
		v.checkLevel("root", cfg.Root.Level)
	}

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}
