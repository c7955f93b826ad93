// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"testing"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr
}

func TestValidateAssembledConfig(t *testing.T) {
	cfg, _ := build(t, map[string]string{
		env.LogGroupARNKey(SourceTask):         testTaskGroupARN,
		env.LogGroupARNKey(SourceDagProcessor): testDagGroupARN,
		env.LogGroupARNKey(SourceScheduler):    testSchedulerGroupARN,
		env.LogLevelKey(SourceScheduler):       "WARNING",
		env.KMSKeyARNKey:                       testKMSKeyARN,
	})

	assert.NoError(t, Validate(cfg))
}

func TestValidateReportsDanglingReferences(t *testing.T) {
	cfg := New()
	cfg.Handlers["h"] = &Handler{Class: "c", Formatter: "missing_formatter", Filters: []string{"missing_filter"}}
	cfg.Loggers["l"] = &Logger{Handlers: []string{"h", "missing_handler"}}
	cfg.Root = &RootLogger{Handlers: []string{"missing_root_handler"}, Filters: []string{"missing_filter"}}

	verr := requireValidationError(t, Validate(cfg))
	assert.Equal(t, []Problem{
		{Type: UnknownFormatter, Path: "handlers.h", Message: `formatter "missing_formatter" is not defined`},
		{Type: UnknownFilter, Path: "handlers.h", Message: `filter "missing_filter" is not defined`},
		{Type: UnknownHandler, Path: "loggers.l", Message: `handler "missing_handler" is not defined`},
		{Type: UnknownHandler, Path: "root", Message: `handler "missing_root_handler" is not defined`},
		{Type: UnknownFilter, Path: "root", Message: `filter "missing_filter" is not defined`},
	}, verr.Problems)
}

func TestValidateLevels(t *testing.T) {
	cfg, _ := build(t, map[string]string{
		env.LogGroupARNKey(SourceWorker): "arn:aws:logs:us-east-1:123456789012:log-group:w",
		env.LogLevelKey(SourceWorker):    "info",
	})

	verr := requireValidationError(t, Validate(cfg))
	assert.True(t, verr.Has(InvalidLogLevel))
	assert.Len(t, verr.Problems, 2)
	assert.Equal(t, "loggers.mwaa.worker", verr.Problems[0].Path)
	assert.Equal(t, "loggers.mwaa.worker_requirements", verr.Problems[1].Path)
}

func TestValidateCloudWatchArguments(t *testing.T) {
	cfg, _ := build(t, map[string]string{
		env.LogGroupARNKey(SourceTask): "arn:aws:s3:::bucket",
		env.KMSKeyARNKey:               "arn:aws:logs:us-east-1:123456789012:log-group:x",
	})

	verr := requireValidationError(t, Validate(cfg))
	assert.True(t, verr.Has(InvalidLogGroupARN))
	assert.True(t, verr.Has(InvalidKMSKeyARN))
	assert.False(t, verr.Has(InvalidHandlerArgument))
	assert.Contains(t, verr.Error(), "invalid logging configuration: handlers.task:")
}

func TestValidateHandlerArgumentTypes(t *testing.T) {
	cfg := New()
	cfg.Handlers["h"] = &Handler{
		Class: SubprocessLogHandlerClass,
		Args: map[string]interface{}{
			ArgLogGroupARN: 42,
			ArgKMSKeyARN:   true,
			ArgEnabled:     "true",
		},
	}

	verr := requireValidationError(t, Validate(cfg))
	assert.Equal(t, []ErrorType{InvalidLogGroupARN, InvalidKMSKeyARN, InvalidHandlerArgument}, []ErrorType{
		verr.Problems[0].Type, verr.Problems[1].Type, verr.Problems[2].Type,
	})
}

func TestIsKnownLevel(t *testing.T) {
	for _, level := range []string{"CRITICAL", "FATAL", "ERROR", "WARN", "WARNING", "INFO", "DEBUG", "NOTSET"} {
		assert.True(t, IsKnownLevel(level), level)
	}
	for _, level := range []string{"", "info", "TRACE", "10"} {
		assert.False(t, IsKnownLevel(level), level)
	}
}
