// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package airflow

import (
	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
)

// Names and classes of the framework default configuration.
const (
	AirflowColouredFormatter = "airflow_coloured"
	SourceProcessorFormatter = "source_processor"
	ConsoleHandler           = "console"
	ProcessorToStdoutHandler = "processor_to_stdout"
	FlaskAppBuilderLogger    = "flask_appbuilder"

	SecretsMaskerClass                 = "airflow.utils.log.secrets_masker.SecretsMasker"
	RedirectStdHandlerClass            = "airflow.utils.log.logging_mixin.RedirectStdHandler"
	FileTaskHandlerClass               = "airflow.utils.log.file_task_handler.FileTaskHandler"
	FileProcessorHandlerClass          = "airflow.utils.log.file_processor_handler.FileProcessorHandler"
	NonCachingRotatingFileHandlerClass = "airflow.utils.log.non_caching_file_handler.NonCachingRotatingFileHandler"

	stdoutStream = "sys.stdout"

	processorManagerMaxBytes    = 104857600
	processorManagerBackupCount = 5
)

// DefaultLoggingConfig returns a fresh copy of the framework's default
// logging configuration for these settings.
func (s Settings) DefaultLoggingConfig() *logconfig.Config {
	colouredFormat, colouredClass := s.LogFormat, s.LogFormatterClass
	if s.ColoredConsoleLog {
		colouredFormat, colouredClass = s.ColoredLogFormat, s.ColoredFormatterClass
	}

	processorHandler := logconfig.ProcessorHandler
	if s.DagProcessorLogTarget == "stdout" {
		processorHandler = ProcessorToStdoutHandler
	}

	cfg := logconfig.New()
	cfg.DisableExistingLoggers = false

	cfg.Formatters[logconfig.AirflowFormatter] = &logconfig.Formatter{Format: s.LogFormat, Class: s.LogFormatterClass}
	cfg.Formatters[AirflowColouredFormatter] = &logconfig.Formatter{Format: colouredFormat, Class: colouredClass}
	cfg.Formatters[SourceProcessorFormatter] = &logconfig.Formatter{Format: s.DagProcessorLogFormat, Class: s.LogFormatterClass}

	cfg.Filters[logconfig.MaskSecretsFilter] = &logconfig.Filter{Factory: SecretsMaskerClass}

	cfg.Handlers[ConsoleHandler] = &logconfig.Handler{
		Class:     RedirectStdHandlerClass,
		Formatter: AirflowColouredFormatter,
		Filters:   []string{logconfig.MaskSecretsFilter},
		Args:      map[string]interface{}{logconfig.ArgStream: stdoutStream},
	}
	cfg.Handlers[logconfig.TaskHandler] = &logconfig.Handler{
		Class:     FileTaskHandlerClass,
		Formatter: logconfig.AirflowFormatter,
		Filters:   []string{logconfig.MaskSecretsFilter},
		Args:      map[string]interface{}{logconfig.ArgBaseLogFolder: s.BaseLogFolder()},
	}
	cfg.Handlers[logconfig.ProcessorHandler] = &logconfig.Handler{
		Class:     FileProcessorHandlerClass,
		Formatter: logconfig.AirflowFormatter,
		Filters:   []string{logconfig.MaskSecretsFilter},
		Args: map[string]interface{}{
			logconfig.ArgBaseLogFolder:    ExpandUser(s.ChildProcessLogDir),
			logconfig.ArgFilenameTemplate: ProcessorFilenameTemplate,
		},
	}
	cfg.Handlers[ProcessorToStdoutHandler] = &logconfig.Handler{
		Class:     RedirectStdHandlerClass,
		Formatter: SourceProcessorFormatter,
		Filters:   []string{logconfig.MaskSecretsFilter},
		Args:      map[string]interface{}{logconfig.ArgStream: stdoutStream},
	}

	cfg.Loggers[logconfig.ProcessorLoggerName] = &logconfig.Logger{
		Handlers:  []string{processorHandler},
		Level:     s.LoggingLevel,
		Propagate: true,
	}
	cfg.Loggers[logconfig.TaskLoggerName] = &logconfig.Logger{
		Handlers:  []string{logconfig.TaskHandler},
		Level:     s.LoggingLevel,
		Propagate: true,
		Filters:   []string{logconfig.MaskSecretsFilter},
	}
	cfg.Loggers[FlaskAppBuilderLogger] = &logconfig.Logger{
		Handlers:  []string{ConsoleHandler},
		Level:     s.FabLoggingLevel,
		Propagate: true,
	}
	cfg.Root = &logconfig.RootLogger{
		Handlers: []string{ConsoleHandler},
		Level:    s.LoggingLevel,
		Filters:  []string{logconfig.MaskSecretsFilter},
	}

	for _, name := range s.ExtraLoggerNames {
		cfg.Loggers[name] = &logconfig.Logger{
			Handlers:  []string{ConsoleHandler},
			Level:     s.LoggingLevel,
			Propagate: true,
		}
	}

	if s.ConfigProcessorManagerLogger {
		cfg.Handlers[logconfig.ProcessorManagerHandler] = &logconfig.Handler{
			Class:     NonCachingRotatingFileHandlerClass,
			Formatter: logconfig.AirflowFormatter,
			Args: map[string]interface{}{
				logconfig.ArgFilename:    s.ProcessorManagerLogPath,
				logconfig.ArgMode:        "a",
				logconfig.ArgMaxBytes:    processorManagerMaxBytes,
				logconfig.ArgBackupCount: processorManagerBackupCount,
			},
		}
		cfg.Loggers[logconfig.ProcessorManagerLoggerName] = &logconfig.Logger{
			Handlers:  []string{logconfig.ProcessorManagerHandler},
			Level:     s.LoggingLevel,
			Propagate: false,
		}
	}

	return cfg
}
