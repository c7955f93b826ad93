// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"fmt"
	"strings"
)

// KMSKeyARNKey holds the KMS key used to encrypt every CloudWatch log group
// of the environment.
const KMSKeyARNKey = "MWAA__CORE__KMS_KEY_ARN"

const mwaaLoggingPrefix = "MWAA__LOGGING__AIRFLOW_"

// Host framework keys, following the AIRFLOW__<SECTION>__<KEY> convention.
const (
	AirflowHomeKey                     = "AIRFLOW_HOME"
	LoggingLevelKey                    = "AIRFLOW__LOGGING__LOGGING_LEVEL"
	FabLoggingLevelKey                 = "AIRFLOW__LOGGING__FAB_LOGGING_LEVEL"
	LogFormatKey                       = "AIRFLOW__LOGGING__LOG_FORMAT"
	DagProcessorLogFormatKey           = "AIRFLOW__LOGGING__DAG_PROCESSOR_LOG_FORMAT"
	LogFormatterClassKey               = "AIRFLOW__LOGGING__LOG_FORMATTER_CLASS"
	ColoredConsoleLogKey               = "AIRFLOW__LOGGING__COLORED_CONSOLE_LOG"
	ColoredLogFormatKey                = "AIRFLOW__LOGGING__COLORED_LOG_FORMAT"
	ColoredFormatterClassKey           = "AIRFLOW__LOGGING__COLORED_FORMATTER_CLASS"
	DagProcessorLogTargetKey           = "AIRFLOW__LOGGING__DAG_PROCESSOR_LOG_TARGET"
	BaseLogFolderKey                   = "AIRFLOW__LOGGING__BASE_LOG_FOLDER"
	ChildProcessLogDirectoryKey        = "AIRFLOW__SCHEDULER__CHILD_PROCESS_LOG_DIRECTORY"
	DagProcessorManagerLogLocationKey  = "AIRFLOW__LOGGING__DAG_PROCESSOR_MANAGER_LOG_LOCATION"
	ExtraLoggerNamesKey                = "AIRFLOW__LOGGING__EXTRA_LOGGER_NAMES"
	ConfigProcessorManagerLoggerEnvKey = "CONFIG_PROCESSOR_MANAGER_LOGGER"
)

func sourceKey(source, suffix string) string {
	return fmt.Sprintf("%s%s_%s", mwaaLoggingPrefix, strings.ToUpper(source), suffix)
}

// LogGroupARNKey returns the variable holding the CloudWatch log group ARN
// of a log source, e.g. MWAA__LOGGING__AIRFLOW_TASK_LOG_GROUP_ARN.
func LogGroupARNKey(source string) string {
	return sourceKey(source, "LOG_GROUP_ARN")
}

// LogLevelKey returns the variable holding the log level of a log source.
func LogLevelKey(source string) string {
	return sourceKey(source, "LOG_LEVEL")
}

// LogsEnabledKey returns the variable holding the enabled flag of a log source.
func LogsEnabledKey(source string) string {
	return sourceKey(source, "LOGS_ENABLED")
}
