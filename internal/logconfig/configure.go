// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"strings"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"

	log "github.com/sirupsen/logrus"
)

// CloudWatch handler classes, resolved by the host process.
const (
	TaskLogHandlerClass                = "mwaa.logging.cloudwatch_handlers.TaskLogHandler"
	DagProcessorManagerLogHandlerClass = "mwaa.logging.cloudwatch_handlers.DagProcessorManagerLogHandler"
	DagProcessingLogHandlerClass       = "mwaa.logging.cloudwatch_handlers.DagProcessingLogHandler"
	SubprocessLogHandlerClass          = "mwaa.logging.cloudwatch_handlers.SubprocessLogHandler"
)

// Names the host default configuration defines and the CloudWatch handlers reuse.
const (
	AirflowFormatter           = "airflow"
	MaskSecretsFilter          = "mask_secrets"
	TaskHandler                = "task"
	ProcessorHandler           = "processor"
	ProcessorManagerHandler    = "processor_manager"
	TaskLoggerName             = "airflow.task"
	ProcessorLoggerName        = "airflow.processor"
	ProcessorManagerLoggerName = "airflow.processor_manager"
)

// IsCloudWatchHandlerClass reports whether class ships records to CloudWatch Logs
func IsCloudWatchHandlerClass(class string) bool {
	switch class {
	case TaskLogHandlerClass, DagProcessorManagerLogHandlerClass, DagProcessingLogHandlerClass, SubprocessLogHandlerClass:
		return true
	}
	return false
}

// HostFramework supplies the default configuration of the orchestration
// framework and the locations its handlers write to.
type HostFramework interface {
	DefaultLoggingConfig() *Config
	BaseLogFolder() string
	DagProcessorManagerLogLocation() string
	ProcessorFilenameTemplate() string
}

// Build assembles the logging configuration: the host default with every
// log source that has a log group routed to CloudWatch Logs. The host
// default is never modified.
func Build(e *env.Environment, host HostFramework) *Config {
	cfg := host.DefaultLoggingConfig().Clone()
	kmsKey := kmsKeyARN(e)

	configureTaskLogging(cfg, e, host, kmsKey)
	configureDagProcessingLogging(cfg, e, host, kmsKey)
	for _, component := range Components {
		settings := ReadSourceSettings(e, component)
		configureSubprocessLogging(cfg, component, settings, kmsKey)
		configureSubprocessLogging(cfg, RequirementsSubprocess(component), settings, kmsKey)
	}

	return cfg
}

func configureTaskLogging(cfg *Config, e *env.Environment, host HostFramework, kmsKey interface{}) {
	settings := ReadSourceSettings(e, SourceTask)
	if !settings.Configured() {
		return
	}

	cfg.Handlers[TaskHandler] = &Handler{
		Class:     TaskLogHandlerClass,
		Formatter: AirflowFormatter,
		Filters:   []string{MaskSecretsFilter},
		Args: map[string]interface{}{
			ArgBaseLogFolder: host.BaseLogFolder(),
			ArgLogGroupARN:   settings.LogGroupARN,
			ArgKMSKeyARN:     kmsKey,
			ArgEnabled:       settings.Enabled,
		},
	}

	// Only the level changes, the rest of the host task logger is kept.
	logger, ok := cfg.Loggers[TaskLoggerName]
	if !ok {
		logger = &Logger{Handlers: []string{TaskHandler}, Propagate: true}
		cfg.Loggers[TaskLoggerName] = logger
	}
	logger.Level = settings.LogLevel

	log.WithField("logGroupArn", settings.LogGroupARN).Debug("Configured CloudWatch task logging")
}

func configureDagProcessingLogging(cfg *Config, e *env.Environment, host HostFramework, kmsKey interface{}) {
	settings := ReadSourceSettings(e, SourceDagProcessor)
	if !settings.Configured() {
		return
	}

	cfg.Handlers[ProcessorManagerHandler] = &Handler{
		Class:     DagProcessorManagerLogHandlerClass,
		Formatter: AirflowFormatter,
		Args: map[string]interface{}{
			ArgLogGroupARN: settings.LogGroupARN,
			ArgKMSKeyARN:   kmsKey,
			ArgStreamName:  streamNameFromLocation(host.DagProcessorManagerLogLocation()),
			ArgEnabled:     settings.Enabled,
		},
	}
	cfg.Loggers[ProcessorManagerLoggerName] = &Logger{
		Handlers:  []string{ProcessorManagerHandler},
		Level:     settings.LogLevel,
		Propagate: false,
	}

	cfg.Handlers[ProcessorHandler] = &Handler{
		Class:     DagProcessingLogHandlerClass,
		Formatter: AirflowFormatter,
		Args: map[string]interface{}{
			ArgLogGroupARN:        settings.LogGroupARN,
			ArgKMSKeyARN:          kmsKey,
			ArgStreamNameTemplate: host.ProcessorFilenameTemplate(),
			ArgEnabled:            settings.Enabled,
		},
	}
	cfg.Loggers[ProcessorLoggerName] = &Logger{
		Handlers:  []string{ProcessorHandler},
		Level:     settings.LogLevel,
		Propagate: false,
	}

	log.WithField("logGroupArn", settings.LogGroupARN).Debug("Configured CloudWatch DAG processing logging")
}

// streamNameFromLocation keeps everything after the last '/', so a location
// ending in '/' yields an empty stream name rather than its parent directory.
func streamNameFromLocation(location string) string {
	return location[strings.LastIndex(location, "/")+1:]
}

func configureSubprocessLogging(cfg *Config, subprocess string, settings SourceSettings, kmsKey interface{}) {
	if !settings.Configured() {
		return
	}
	loggerName, err := LoggerNameFor(subprocess)
	if err != nil {
		log.WithError(err).Panic("Subprocess without a logger")
	}
	handlerName := HandlerNameFor(loggerName)

	cfg.Handlers[handlerName] = &Handler{
		Class:     SubprocessLogHandlerClass,
		Formatter: AirflowFormatter,
		Filters:   []string{MaskSecretsFilter},
		Args: map[string]interface{}{
			ArgLogGroupARN:      settings.LogGroupARN,
			ArgKMSKeyARN:        kmsKey,
			ArgStreamNamePrefix: strings.ToLower(subprocess),
			ArgLogsSource:       subprocess,
			ArgEnabled:          settings.Enabled,
		},
	}
	cfg.Loggers[loggerName] = &Logger{
		Handlers:  []string{handlerName},
		Level:     settings.LogLevel,
		Propagate: false,
	}

	log.WithFields(log.Fields{"logger": loggerName, "logGroupArn": settings.LogGroupARN}).Debug("Configured CloudWatch subprocess logging")
}
