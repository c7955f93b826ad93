// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package airflow

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"

	log "github.com/sirupsen/logrus"
)

// Framework defaults for the logging settings.
const (
	DefaultAirflowHome           = "~/airflow"
	DefaultLoggingLevel          = "INFO"
	DefaultFabLoggingLevel       = "WARNING"
	DefaultLogFormat             = "[%(asctime)s] {%(filename)s:%(lineno)d} %(levelname)s - %(message)s"
	DefaultDagProcessorLogFormat = "[%(asctime)s] [SOURCE:DAG_PROCESSOR] {%(filename)s:%(lineno)d} %(levelname)s - %(message)s"
	DefaultLogFormatterClass     = "airflow.utils.log.timezone_aware.TimezoneAware"
	DefaultColoredLogFormat      = "[%(blue)s%(asctime)s%(reset)s] {%(blue)s%(filename)s:%(reset)s%(lineno)d} " +
		"%(log_color)s%(levelname)s%(reset)s - %(log_color)s%(message)s%(reset)s"
	DefaultColoredFormatterClass = "airflow.utils.log.colored_log.CustomTTYColoredFormatter"
	DefaultDagProcessorLogTarget = "file"

	// ProcessorFilenameTemplate names the per-file DAG processing log.
	ProcessorFilenameTemplate = "{{ filename }}.log"
)

// Settings are the framework logging settings the default configuration is built from
type Settings struct {
	AirflowHome           string
	LoggingLevel          string
	FabLoggingLevel       string
	LogFormat             string
	DagProcessorLogFormat string
	LogFormatterClass     string
	ColoredConsoleLog     bool
	ColoredLogFormat      string
	ColoredFormatterClass string
	DagProcessorLogTarget string

	BaseLogDir              string
	ChildProcessLogDir      string
	ProcessorManagerLogPath string

	ExtraLoggerNames             []string
	ConfigProcessorManagerLogger bool
}

// LoadSettings reads the framework logging settings from the environment,
// falling back to the framework defaults.
func LoadSettings(e *env.Environment) Settings {
	home := ExpandUser(e.GetWithDefault(env.AirflowHomeKey, DefaultAirflowHome))
	logs := filepath.Join(home, "logs")

	return Settings{
		AirflowHome:           home,
		LoggingLevel:          strings.ToUpper(e.GetWithDefault(env.LoggingLevelKey, DefaultLoggingLevel)),
		FabLoggingLevel:       strings.ToUpper(e.GetWithDefault(env.FabLoggingLevelKey, DefaultFabLoggingLevel)),
		LogFormat:             e.GetWithDefault(env.LogFormatKey, DefaultLogFormat),
		DagProcessorLogFormat: e.GetWithDefault(env.DagProcessorLogFormatKey, DefaultDagProcessorLogFormat),
		LogFormatterClass:     e.GetWithDefault(env.LogFormatterClassKey, DefaultLogFormatterClass),
		ColoredConsoleLog:     parseBoolean(e, env.ColoredConsoleLogKey, true),
		ColoredLogFormat:      e.GetWithDefault(env.ColoredLogFormatKey, DefaultColoredLogFormat),
		ColoredFormatterClass: e.GetWithDefault(env.ColoredFormatterClassKey, DefaultColoredFormatterClass),
		DagProcessorLogTarget: e.GetWithDefault(env.DagProcessorLogTargetKey, DefaultDagProcessorLogTarget),

		BaseLogDir:              e.GetWithDefault(env.BaseLogFolderKey, logs),
		ChildProcessLogDir:      e.GetWithDefault(env.ChildProcessLogDirectoryKey, filepath.Join(logs, "scheduler")),
		ProcessorManagerLogPath: e.GetWithDefault(env.DagProcessorManagerLogLocationKey, filepath.Join(logs, "dag_processor_manager", "dag_processor_manager.log")),

		ExtraLoggerNames:             splitNames(e.Get(env.ExtraLoggerNamesKey)),
		ConfigProcessorManagerLogger: e.Get(env.ConfigProcessorManagerLoggerEnvKey) == "True",
	}
}

// parseBoolean follows the framework's boolean options: t/true/1 and f/false/0
// in any case. Anything else keeps the default.
func parseBoolean(e *env.Environment, key string, defaultValue bool) bool {
	val, ok := e.Lookup(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "t", "true", "1":
		return true
	case "f", "false", "0":
		return false
	}
	log.WithFields(log.Fields{"key": key, "value": val}).Warn("Not a boolean, using default")
	return defaultValue
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ExpandUser replaces a leading "~" with the current user's home directory.
// Paths starting with "~user" and paths when no home directory is known
// are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.WithError(err).Warn("Cannot expand home directory")
		return path
	}
	return home + path[1:]
}

// BaseLogFolder is the expanded folder task logs are written under
func (s Settings) BaseLogFolder() string {
	return ExpandUser(s.BaseLogDir)
}

// DagProcessorManagerLogLocation is the log file of the DAG processor manager
func (s Settings) DagProcessorManagerLogLocation() string {
	return s.ProcessorManagerLogPath
}

// ProcessorFilenameTemplate names the per-file DAG processing log
func (s Settings) ProcessorFilenameTemplate() string {
	return ProcessorFilenameTemplate
}
