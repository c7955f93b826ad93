// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLevel sets the level of the standard logrus logger. An unknown
// level name is logged and the level falls back to info.
func SetLevel(level string) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithError(err).Errorf("Invalid log level %q, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

// SetFormat selects the text or json formatter for the standard logrus logger
func SetFormat(format string) {
	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
