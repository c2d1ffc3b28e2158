// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		// Log is the logging config
		Log Logger `yaml:"log"`

		// Database is the config for the document/log store that holds
		// execution logs and agent read grants
		Database DatabaseConfig `yaml:"database"`

		// Orchestrator is the config for the remote workflow-orchestration backend
		Orchestrator OrchestratorConfig `yaml:"orchestrator"`

		// ApiService is the API service config
		ApiService ApiServiceConfig `yaml:"apiService"`

		// Visibility is the config for the execution visibility engine
		Visibility VisibilityConfig `yaml:"visibility"`
	}

	DatabaseConfig struct {
		// SQL is the SQL database config
		SQL *SQL `yaml:"sql"`
	}

	ApiServiceConfig struct {
		// HttpServer is the config for starting http.Server
		HttpServer HttpServerConfig `yaml:"httpServer"`
	}

	// OrchestratorConfig is the config for calling the remote
	// workflow-orchestration backend
	OrchestratorConfig struct {
		// Address is the base URL of the orchestration backend, e.g. http://localhost:8233
		Address string `yaml:"address"`
		// RequestTimeout bounds every single call to the backend.
		// If not specified then the default value of 10 seconds is used.
		RequestTimeout time.Duration `yaml:"requestTimeout"`
		// MaxRetries is how many times an idempotent read call
		// (describe/list/history) is retried on transient failure.
		// If not specified then the default value of 3 is used.
		MaxRetries int `yaml:"maxRetries"`
		// RetryInterval is the constant backoff between retries.
		// If not specified then the default value of 1 second is used.
		RetryInterval time.Duration `yaml:"retryInterval"`
	}

	// VisibilityConfig holds the knobs of the visibility engine
	VisibilityConfig struct {
		// WorkerLivenessWindow is the trailing window in which a poller's last
		// access counts as "recently active".
		// If not specified then the default value of 60 seconds is used.
		WorkerLivenessWindow time.Duration `yaml:"workerLivenessWindow"`
		// DistinctScanLimit caps how many executions a distinct-tag scan reads.
		// If not specified then the default value of 500 is used.
		DistinctScanLimit int `yaml:"distinctScanLimit"`
		// DistinctValueTTL is how long a distinct-tag result stays cached
		// per (tenant, user).
		// If not specified then the default value of 5 minutes is used.
		DistinctValueTTL time.Duration `yaml:"distinctValueTTL"`
		// ListFetchFloor is the minimum number of items requested from the
		// backend listing call when emulating page-number pagination.
		// If not specified then the default value of 100 is used.
		ListFetchFloor int `yaml:"listFetchFloor"`
	}

	// HttpServerConfig is the config that will be mapped into http.Server
	HttpServerConfig struct {
		// Address optionally specifies the TCP address for the server to listen on,
		// in the form "host:port". If empty, ":http" (port 80) is used.
		Address string `yaml:"address"`
		// ReadTimeout is the maximum duration for reading the entire
		// request, including the body.
		// For more details, see https://blog.cloudflare.com/the-complete-guide-to-golang-net-http-timeouts/
		ReadTimeout time.Duration `yaml:"readTimeout"`
		// WriteTimeout is the maximum duration before timing out
		// writes of the response. It is valid to use them both ReadTimeout and WriteTimeout.
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		// TLSConfig optionally provides a TLS configuration for use
		// by ServeTLS and ListenAndServeTLS
		TLSConfig *tls.Config `yaml:"tlsConfig"`
		// the rest are less frequently used
		ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
		IdleTimeout       time.Duration `yaml:"idleTimeout"`
		MaxHeaderBytes    int           `yaml:"maxHeaderBytes"`
	}
)

// NewConfig returns a new decoded Config struct
func NewConfig(configPath string) (*Config, error) {
	log.Printf("Loading configFile=%v\n", configPath)

	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)

	if err := d.Decode(&config); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) ValidateAndSetDefaults() error {
	if c.Database.SQL == nil {
		return fmt.Errorf("sql config is required")
	}
	sql := c.Database.SQL
	if anyAbsent(sql.DatabaseName, sql.ConnectAddr, sql.User) {
		return fmt.Errorf("some required configs are missing: sql.DatabaseName, sql.ConnectAddr, sql.User")
	}
	if c.Orchestrator.Address == "" {
		return fmt.Errorf("orchestrator.address is required")
	}
	orcCfg := &c.Orchestrator
	if orcCfg.RequestTimeout == 0 {
		orcCfg.RequestTimeout = 10 * time.Second
	}
	if orcCfg.MaxRetries == 0 {
		orcCfg.MaxRetries = 3
	}
	if orcCfg.RetryInterval == 0 {
		orcCfg.RetryInterval = time.Second
	}
	visCfg := &c.Visibility
	if visCfg.WorkerLivenessWindow == 0 {
		visCfg.WorkerLivenessWindow = 60 * time.Second
	}
	if visCfg.DistinctScanLimit == 0 {
		visCfg.DistinctScanLimit = 500
	}
	if visCfg.DistinctValueTTL == 0 {
		visCfg.DistinctValueTTL = 5 * time.Minute
	}
	if visCfg.ListFetchFloor == 0 {
		visCfg.ListFetchFloor = 100
	}
	return nil
}

func anyAbsent(strs ...string) bool {
	for _, s := range strs {
		if s == "" {
			return true
		}
	}
	return false
}

// String converts the config object into a string
func (c *Config) String() string {
	out, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		panic(err)
	}
	return string(out)
}
