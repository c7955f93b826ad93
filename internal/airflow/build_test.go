// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package airflow

import (
	"encoding/json"
	"testing"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"
	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A full environment as the container sees it.
func mwaaEnvironment() *env.Environment {
	vars := map[string]string{
		env.AirflowHomeKey: "/usr/local/airflow",
		env.KMSKeyARNKey:   "arn:aws:kms:us-west-2:123456789012:key/abcd",
	}
	for _, source := range []string{"task", "dagprocessor", "worker", "scheduler", "webserver", "triggerer"} {
		vars[env.LogGroupARNKey(source)] = "arn:aws:logs:us-west-2:123456789012:log-group:airflow-env-" + source
		vars[env.LogLevelKey(source)] = "WARNING"
		vars[env.LogsEnabledKey(source)] = "true"
	}
	return env.NewEnvironmentFromMap(vars)
}

func TestBuildAgainstFrameworkDefaults(t *testing.T) {
	e := mwaaEnvironment()
	cfg := logconfig.Build(e, LoadSettings(e))

	require.NoError(t, logconfig.Validate(cfg))
	assert.Len(t, logconfig.Routes(cfg), 11)

	data, err := json.Marshal(cfg.Handlers[logconfig.TaskHandler])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"class": "mwaa.logging.cloudwatch_handlers.TaskLogHandler",
		"formatter": "airflow",
		"filters": ["mask_secrets"],
		"base_log_folder": "/usr/local/airflow/logs",
		"log_group_arn": "arn:aws:logs:us-west-2:123456789012:log-group:airflow-env-task",
		"kms_key_arn": "arn:aws:kms:us-west-2:123456789012:key/abcd",
		"enabled": true
	}`, string(data))

	data, err = json.Marshal(cfg.Handlers[logconfig.ProcessorManagerHandler])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"class": "mwaa.logging.cloudwatch_handlers.DagProcessorManagerLogHandler",
		"formatter": "airflow",
		"log_group_arn": "arn:aws:logs:us-west-2:123456789012:log-group:airflow-env-dagprocessor",
		"kms_key_arn": "arn:aws:kms:us-west-2:123456789012:key/abcd",
		"stream_name": "dag_processor_manager.log",
		"enabled": true
	}`, string(data))

	// The task logger keeps the framework's handlers, propagation and filters.
	assert.Equal(t, &logconfig.Logger{
		Handlers:  []string{logconfig.TaskHandler},
		Level:     "WARNING",
		Propagate: true,
		Filters:   []string{logconfig.MaskSecretsFilter},
	}, cfg.Loggers[logconfig.TaskLoggerName])

	// Untouched framework entries survive.
	assert.Contains(t, cfg.Handlers, ConsoleHandler)
	assert.Contains(t, cfg.Loggers, FlaskAppBuilderLogger)
	assert.Equal(t, []string{ConsoleHandler}, cfg.Root.Handlers)
}

func TestBuildReplacesFileProcessorManagerHandler(t *testing.T) {
	e := mwaaEnvironment().With(map[string]string{env.ConfigProcessorManagerLoggerEnvKey: "True"})
	cfg := logconfig.Build(e, LoadSettings(e))

	assert.Equal(t, logconfig.DagProcessorManagerLogHandlerClass, cfg.Handlers[logconfig.ProcessorManagerHandler].Class)
	assert.Equal(t, "WARNING", cfg.Loggers[logconfig.ProcessorManagerLoggerName].Level)
}
