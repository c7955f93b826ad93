// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"errors"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Environment is a snapshot of environment variables, taken once at startup.
// Lookups never go back to the process environment, so a configuration built
// from an Environment is reproducible.
type Environment struct {
	vars map[string]string
}

// NewEnvironment snapshots the process environment
func NewEnvironment() *Environment {
	return NewEnvironmentFromKVSlice(os.Environ())
}

// NewEnvironmentFromMap builds an Environment from explicit values
func NewEnvironmentFromMap(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// NewEnvironmentFromKVSlice builds an Environment from KEY=VALUE strings.
// Entries without a '=' delimiter are skipped.
func NewEnvironmentFromKVSlice(kvPairs []string) *Environment {
	e := &Environment{vars: make(map[string]string, len(kvPairs))}
	for _, kv := range kvPairs {
		key, val, err := SplitEnvironmentVariable(kv)
		if err != nil {
			log.WithError(err).Warn("Invalid environment variable format")
			continue
		}
		e.vars[key] = val
	}
	return e
}

// SplitEnvironmentVariable splits a KEY=VALUE string on the first '='
func SplitEnvironmentVariable(envKeyVal string) (string, string, error) {
	splitKeyVal := strings.SplitN(envKeyVal, "=", 2)
	if len(splitKeyVal) < 2 {
		return "", "", errors.New("could not split env var by '=' delimiter")
	}
	return splitKeyVal[0], splitKeyVal[1], nil
}

// Lookup returns the value of key and whether it was set
func (e *Environment) Lookup(key string) (string, bool) {
	val, ok := e.vars[key]
	return val, ok
}

// Get returns the value of key, or "" when unset
func (e *Environment) Get(key string) string {
	return e.vars[key]
}

// GetWithDefault returns the value of key, or defaultValue when unset
func (e *Environment) GetWithDefault(key, defaultValue string) string {
	if val, ok := e.vars[key]; ok {
		return val
	}
	return defaultValue
}

// GetBool returns true when key is set to "true" in any letter case.
// Any other value is false; an unset key yields defaultValue.
func (e *Environment) GetBool(key string, defaultValue bool) bool {
	val, ok := e.vars[key]
	if !ok {
		return defaultValue
	}
	return strings.ToLower(val) == "true"
}

// With returns a copy of the Environment with overrides applied on top
func (e *Environment) With(overrides map[string]string) *Environment {
	c := NewEnvironmentFromMap(e.vars)
	for k, v := range overrides {
		c.vars[k] = v
	}
	return c
}
