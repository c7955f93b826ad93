// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/amazon-mwaa-docker-images/internal/airflow"
	"github.com/aws/amazon-mwaa-docker-images/internal/codec"
	"github.com/aws/amazon-mwaa-docker-images/internal/configserver"
	"github.com/aws/amazon-mwaa-docker-images/internal/env"
	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"
	"github.com/aws/amazon-mwaa-docker-images/internal/logging"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

type options struct {
	LogLevel  string `long:"log-level" default:"info" description:"log level of this tool"`
	LogFormat string `long:"log-format" default:"text" choice:"text" choice:"json" description:"log format of this tool"`
	Format    string `long:"format" default:"json" description:"output format of the logging configuration (json, yaml)"`
	Output    string `long:"output" short:"o" description:"file to write the logging configuration to, stdout when empty"`
	Strict    bool   `long:"strict" description:"exit with an error when the configuration does not validate"`
	Routes    bool   `long:"routes" description:"write the CloudWatch routes instead of the full configuration"`
	Serve     bool   `long:"serve" description:"serve the configuration over HTTP instead of writing it"`
	Host      string `long:"host" default:"127.0.0.1" description:"config server host"`
	Port      int    `long:"port" default:"8089" description:"config server port, 0 picks a free port"`
}

func main() {
	opts := getCLIArgs(os.Args)
	logging.SetOutput(os.Stderr)
	logging.SetFormat(opts.LogFormat)
	logging.SetLevel(opts.LogLevel)

	cfg, err := assemble(env.NewEnvironment(), opts.Strict)
	if err != nil {
		log.WithError(err).Fatal("Failed to assemble logging configuration")
	}

	if opts.Serve {
		if err := serve(opts, cfg); err != nil && errors.Cause(err) != context.Canceled {
			log.WithError(err).Fatal("Config server failed")
		}
		return
	}

	if err := write(opts, cfg); err != nil {
		log.WithError(err).Fatal("Failed to write logging configuration")
	}
}

func getCLIArgs(argv []string) options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(argv); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", argv)
	}
	return opts
}

// assemble builds the configuration from e and validates it. Validation
// problems are only fatal in strict mode.
func assemble(e *env.Environment, strict bool) (*logconfig.Config, error) {
	cfg := logconfig.Build(e, airflow.LoadSettings(e))

	if err := logconfig.Validate(cfg); err != nil {
		if strict {
			return nil, err
		}
		log.WithError(err).Warn("Logging configuration has problems")
	}

	for _, route := range logconfig.Routes(cfg) {
		log.WithFields(log.Fields{
			"logger":      route.Logger,
			"handler":     route.Handler,
			"logGroupArn": route.LogGroupARN,
			"enabled":     route.Enabled,
			"level":       route.Level,
		}).Info("CloudWatch route")
	}
	return cfg, nil
}

func write(opts options, cfg *logconfig.Config) error {
	format, err := codec.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", opts.Output)
		}
		defer f.Close()
		w = f
	}

	if opts.Routes {
		return codec.Encode(w, logconfig.Routes(cfg), format)
	}
	return codec.Encode(w, cfg, format)
}

func serve(opts options, cfg *logconfig.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := configserver.NewServer(opts.Host, opts.Port, cfg)
	if err := server.Listen(); err != nil {
		return errors.Wrap(err, "listening")
	}
	log.WithField("url", server.URL("/logging-config")).Info("Serving logging configuration")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down config server")
		return nil
	})
	return g.Wait()
}
