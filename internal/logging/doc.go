// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging sets up the tool's own logs. They are operational logs written
to stderr and are distinct from the streams the assembled configuration routes:

1. Task logs: airflow.task, one CloudWatch stream per task try
2. DAG processing logs: airflow.processor, one stream per DAG file
3. DAG processor manager logs: airflow.processor_manager
4. Subprocess logs: stdout and stderr of scheduler, worker, webserver and
triggerer, and of their requirements installation, captured into mwaa.* loggers
*/
package logging
