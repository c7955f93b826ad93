// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"fmt"
	"strings"
)

// ErrorType identifies a class of configuration problem
type ErrorType string

const (
	UnknownHandler         ErrorType = "Config.UnknownHandler"
	UnknownFormatter       ErrorType = "Config.UnknownFormatter"
	UnknownFilter          ErrorType = "Config.UnknownFilter"
	InvalidLogLevel        ErrorType = "Config.InvalidLogLevel"
	InvalidLogGroupARN     ErrorType = "Config.InvalidLogGroupARN"
	InvalidKMSKeyARN       ErrorType = "Config.InvalidKMSKeyARN"
	InvalidHandlerArgument ErrorType = "Config.InvalidHandlerArgument"
)

// Problem is a single validation finding
type Problem struct {
	Type    ErrorType `json:"errorType"`
	Path    string    `json:"path"`
	Message string    `json:"errorMessage"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.Path, p.Message, p.Type)
}

// ValidationError carries every problem found in a configuration
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}
	return fmt.Sprintf("invalid logging configuration: %s", strings.Join(msgs, "; "))
}

// Has reports whether a problem of the given type was found
func (e *ValidationError) Has(errorType ErrorType) bool {
	for _, p := range e.Problems {
		if p.Type == errorType {
			return true
		}
	}
	return false
}
