// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"strings"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"
	"github.com/pkg/errors"
)

// Log sources with their own CloudWatch log group.
const (
	SourceTask         = "task"
	SourceDagProcessor = "dagprocessor"
	SourceWorker       = "Worker"
	SourceScheduler    = "Scheduler"
	SourceWebServer    = "WebServer"
	SourceTriggerer    = "Triggerer"
)

// DefaultLogLevel applies to a source whose level variable is unset.
const DefaultLogLevel = "INFO"

const requirementsSuffix = "_requirements"

// Components run as subprocesses whose stdout and stderr are captured into
// a logger of their own. The standalone DAG processor is absent because the
// host already has a dedicated logger for it.
var Components = []string{SourceWorker, SourceScheduler, SourceWebServer, SourceTriggerer}

// Subprocess logger names.
const (
	SchedulerLoggerName             = "mwaa.scheduler"
	SchedulerRequirementsLoggerName = "mwaa.scheduler_requirements"
	TriggererLoggerName             = "mwaa.triggerer"
	TriggererRequirementsLoggerName = "mwaa.triggerer_requirements"
	WebServerLoggerName             = "mwaa.webserver"
	WebServerRequirementsLoggerName = "mwaa.webserver_requirements"
	WorkerLoggerName                = "mwaa.worker"
	WorkerRequirementsLoggerName    = "mwaa.worker_requirements"
)

var subprocessLoggers = map[string]string{
	"scheduler":              SchedulerLoggerName,
	"scheduler_requirements": SchedulerRequirementsLoggerName,
	"triggerer":              TriggererLoggerName,
	"triggerer_requirements": TriggererRequirementsLoggerName,
	"webserver":              WebServerLoggerName,
	"webserver_requirements": WebServerRequirementsLoggerName,
	"worker":                 WorkerLoggerName,
	"worker_requirements":    WorkerRequirementsLoggerName,
}

// ErrUnknownSubprocess is returned for a subprocess without a logger.
var ErrUnknownSubprocess = errors.New("unknown subprocess")

// RequirementsSubprocess names the requirements-installation subprocess of a component
func RequirementsSubprocess(component string) string {
	return component + requirementsSuffix
}

// LoggerNameFor returns the logger that captures a subprocess's output.
// Lookup ignores letter case.
func LoggerNameFor(subprocess string) (string, error) {
	name, ok := subprocessLoggers[strings.ToLower(subprocess)]
	if !ok {
		return "", errors.Wrapf(ErrUnknownSubprocess, "%q", subprocess)
	}
	return name, nil
}

// HandlerNameFor derives a handler name from a logger name
func HandlerNameFor(loggerName string) string {
	return strings.ReplaceAll(loggerName, ".", "_")
}

// SourceSettings are the logging settings of one log source
type SourceSettings struct {
	LogGroupARN string
	LogLevel    string
	Enabled     bool
}

// Configured reports whether the source ships to CloudWatch at all.
// An empty log group ARN counts as absent.
func (s SourceSettings) Configured() bool {
	return s.LogGroupARN != ""
}

// ReadSourceSettings reads the settings of a log source from the environment
func ReadSourceSettings(e *env.Environment, source string) SourceSettings {
	return SourceSettings{
		LogGroupARN: e.Get(env.LogGroupARNKey(source)),
		LogLevel:    e.GetWithDefault(env.LogLevelKey(source), DefaultLogLevel),
		Enabled:     e.GetBool(env.LogsEnabledKey(source), false),
	}
}

// kmsKeyARN is nil when no key is configured so that it serialises as null
func kmsKeyARN(e *env.Environment) interface{} {
	if v, ok := e.Lookup(env.KMSKeyARNKey); ok {
		return v
	}
	return nil
}
