// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logconfig

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/pkg/errors"
)

const (
	logsService      = "logs"
	kmsService       = "kms"
	logGroupResource = "log-group:"
)

// LogGroup is a CloudWatch log group identified by its ARN
type LogGroup struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	AccountID string `json:"accountId"`
	Partition string `json:"partition"`
}

// ParseLogGroupARN parses arn:<partition>:logs:<region>:<account>:log-group:<name>[:*]
func ParseLogGroupARN(s string) (LogGroup, error) {
	parsed, err := arn.Parse(s)
	if err != nil {
		return LogGroup{}, errors.Wrapf(err, "parsing log group ARN %q", s)
	}
	if parsed.Service != logsService {
		return LogGroup{}, errors.Errorf("ARN %q belongs to service %q, not %q", s, parsed.Service, logsService)
	}
	if !strings.HasPrefix(parsed.Resource, logGroupResource) {
		return LogGroup{}, errors.Errorf("ARN %q does not name a log group", s)
	}
	name := strings.TrimSuffix(strings.TrimPrefix(parsed.Resource, logGroupResource), ":*")
	if name == "" {
		return LogGroup{}, errors.Errorf("ARN %q has an empty log group name", s)
	}
	return LogGroup{
		Name:      name,
		Region:    parsed.Region,
		AccountID: parsed.AccountID,
		Partition: parsed.Partition,
	}, nil
}

// ParseKMSKeyARN checks that s is a KMS ARN
func ParseKMSKeyARN(s string) (arn.ARN, error) {
	parsed, err := arn.Parse(s)
	if err != nil {
		return arn.ARN{}, errors.Wrapf(err, "parsing KMS key ARN %q", s)
	}
	if parsed.Service != kmsService {
		return arn.ARN{}, errors.Errorf("ARN %q belongs to service %q, not %q", s, parsed.Service, kmsService)
	}
	return parsed, nil
}

// Route describes one logger whose records go to CloudWatch Logs
type Route struct {
	Logger      string    `json:"logger"`
	Handler     string    `json:"handler"`
	Class       string    `json:"class"`
	Source      string    `json:"source"`
	Level       string    `json:"level"`
	Enabled     bool      `json:"enabled"`
	LogGroupARN string    `json:"logGroupArn"`
	LogGroup    *LogGroup `json:"logGroup,omitempty"`
	KMSKeyARN   string    `json:"kmsKeyArn,omitempty"`
}

func routeSource(h *Handler) string {
	if src, ok := h.StringArg(ArgLogsSource); ok {
		return src
	}
	switch h.Class {
	case TaskLogHandlerClass:
		return SourceTask
	case DagProcessingLogHandlerClass, DagProcessorManagerLogHandlerClass:
		return SourceDagProcessor
	}
	return ""
}

// Routes lists every logger/handler pair shipping to CloudWatch Logs, ordered
// by logger name. A log group ARN that does not parse leaves LogGroup nil;
// Validate reports it.
func Routes(cfg *Config) []Route {
	var routes []Route
	for _, loggerName := range sortedKeys(cfg.Loggers) {
		logger := cfg.Loggers[loggerName]
		for _, handlerName := range logger.Handlers {
			h, ok := cfg.Handlers[handlerName]
			if !ok || !IsCloudWatchHandlerClass(h.Class) {
				continue
			}
			route := Route{
				Logger:  loggerName,
				Handler: handlerName,
				Class:   h.Class,
				Source:  routeSource(h),
				Level:   logger.Level,
			}
			route.Enabled, _ = h.BoolArg(ArgEnabled)
			route.KMSKeyARN, _ = h.StringArg(ArgKMSKeyARN)
			route.LogGroupARN, _ = h.StringArg(ArgLogGroupARN)
			if group, err := ParseLogGroupARN(route.LogGroupARN); err == nil {
				route.LogGroup = &group
			}
			routes = append(routes, route)
		}
	}
	return routes
}
