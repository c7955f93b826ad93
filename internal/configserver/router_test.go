// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/amazon-mwaa-docker-images/internal/env"
	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testGroupARN = "arn:aws:logs:us-east-1:123456789012:log-group:airflow-env-Scheduler"

type testHost struct{}

func (testHost) DefaultLoggingConfig() *logconfig.Config {
	cfg := logconfig.New()
	cfg.Formatters[logconfig.AirflowFormatter] = &logconfig.Formatter{Format: "%(message)s"}
	cfg.Filters[logconfig.MaskSecretsFilter] = &logconfig.Filter{Factory: "m"}
	cfg.Handlers["console"] = &logconfig.Handler{Class: "console.Handler", Args: map[string]interface{}{"stream": "sys.stdout"}}
	cfg.Root = &logconfig.RootLogger{Handlers: []string{"console"}, Level: "INFO"}
	return cfg
}
func (testHost) BaseLogFolder() string                  { return "/logs" }
func (testHost) DagProcessorManagerLogLocation() string { return "/logs/manager.log" }
func (testHost) ProcessorFilenameTemplate() string      { return "{{ filename }}.log" }

func testRouter() http.Handler {
	cfg := logconfig.Build(env.NewEnvironmentFromMap(map[string]string{
		env.LogGroupARNKey(logconfig.SourceScheduler): testGroupARN,
		env.LogsEnabledKey(logconfig.SourceScheduler): "true",
	}), testHost{})
	return NewRouter(cfg)
}

func serve(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest("GET", target, nil)
	responseRecorder := httptest.NewRecorder()
	testRouter().ServeHTTP(responseRecorder, request)
	return responseRecorder
}

func TestPing(t *testing.T) {
	responseRecorder := serve(t, "/ping")

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "pong", responseRecorder.Body.String())
}

func TestLoggingConfigJSON(t *testing.T) {
	responseRecorder := serve(t, "/logging-config")

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "application/json", responseRecorder.Header().Get("Content-Type"))

	var cfg logconfig.Config
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &cfg))
	assert.Equal(t, 1, cfg.Version)
	require.Contains(t, cfg.Handlers, "mwaa_scheduler")
	assert.Equal(t, logconfig.SubprocessLogHandlerClass, cfg.Handlers["mwaa_scheduler"].Class)
	assert.Equal(t, true, cfg.Handlers["mwaa_scheduler"].Args[logconfig.ArgEnabled])
	assert.Equal(t, "sys.stdout", cfg.Handlers["console"].Args["stream"])
	assert.Equal(t, []string{"mwaa_scheduler_requirements"}, cfg.Loggers[logconfig.SchedulerRequirementsLoggerName].Handlers)
}

func TestLoggingConfigYAML(t *testing.T) {
	responseRecorder := serve(t, "/logging-config?format=yaml")

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "application/yaml", responseRecorder.Header().Get("Content-Type"))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(responseRecorder.Body.Bytes(), &decoded))
	assert.Equal(t, 1, decoded["version"])
	assert.Contains(t, decoded["handlers"], "mwaa_scheduler")
}

func TestLoggingConfigUnsupportedFormat(t *testing.T) {
	responseRecorder := serve(t, "/logging-config?format=toml")

	assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)
	assert.JSONEq(t, `{"errorMessage":"Unsupported format \"toml\"","errorType":"Config.UnsupportedFormat"}`, responseRecorder.Body.String())
}

func TestHandlerEntry(t *testing.T) {
	responseRecorder := serve(t, "/logging-config/handlers/mwaa_scheduler")

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.JSONEq(t, `{
		"class": "mwaa.logging.cloudwatch_handlers.SubprocessLogHandler",
		"formatter": "airflow",
		"filters": ["mask_secrets"],
		"log_group_arn": "`+testGroupARN+`",
		"kms_key_arn": null,
		"stream_name_prefix": "scheduler",
		"logs_source": "Scheduler",
		"enabled": true
	}`, responseRecorder.Body.String())
}

func TestHandlerEntryNotFound(t *testing.T) {
	responseRecorder := serve(t, "/logging-config/handlers/nope")

	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
	assert.JSONEq(t, `{"errorMessage":"Handler \"nope\" is not defined","errorType":"Config.HandlerNotFound"}`, responseRecorder.Body.String())
}

func TestLoggerEntry(t *testing.T) {
	responseRecorder := serve(t, "/logging-config/loggers/mwaa.scheduler")

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.JSONEq(t, `{"handlers":["mwaa_scheduler"],"level":"INFO","propagate":false}`, responseRecorder.Body.String())
}

func TestLoggerEntryNotFound(t *testing.T) {
	responseRecorder := serve(t, "/logging-config/loggers/mwaa.worker")

	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
	assert.JSONEq(t, `{"errorMessage":"Logger \"mwaa.worker\" is not defined","errorType":"Config.LoggerNotFound"}`, responseRecorder.Body.String())
}

func TestRoutesEndpoint(t *testing.T) {
	responseRecorder := serve(t, "/routes")

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	var routes []logconfig.Route
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &routes))
	require.Len(t, routes, 2)
	assert.Equal(t, logconfig.SchedulerLoggerName, routes[0].Logger)
	assert.Equal(t, "airflow-env-Scheduler", routes[0].LogGroup.Name)
	assert.Equal(t, "Scheduler_requirements", routes[1].Source)
}

func TestRoutesEndpointEmpty(t *testing.T) {
	request := httptest.NewRequest("GET", "/routes", nil)
	responseRecorder := httptest.NewRecorder()
	NewRouter(testHost{}.DefaultLoggingConfig()).ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.JSONEq(t, `[]`, responseRecorder.Body.String())
}

func TestRequestIDIsAssigned(t *testing.T) {
	responseRecorder := serve(t, "/ping")

	_, err := uuid.Parse(responseRecorder.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDIsKept(t *testing.T) {
	requestID := uuid.New().String()
	request := httptest.NewRequest("GET", "/ping", nil)
	request.Header.Set(RequestIDHeader, requestID)
	responseRecorder := httptest.NewRecorder()

	testRouter().ServeHTTP(responseRecorder, request)

	assert.Equal(t, requestID, responseRecorder.Header().Get(RequestIDHeader))
}

func TestRequestIDMalformedIsReplaced(t *testing.T) {
	request := httptest.NewRequest("GET", "/ping", nil)
	request.Header.Set(RequestIDHeader, "not-a-uuid")
	responseRecorder := httptest.NewRecorder()

	testRouter().ServeHTTP(responseRecorder, request)

	assert.NotEqual(t, "not-a-uuid", responseRecorder.Header().Get(RequestIDHeader))
	_, err := uuid.Parse(responseRecorder.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}
