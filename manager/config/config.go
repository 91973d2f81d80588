/*
 *     Copyright 2024 The esconnector Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	// DatabaseTypeMysql stores clusters in mysql.
	DatabaseTypeMysql = "mysql"

	// DatabaseTypePostgres stores clusters in postgres.
	DatabaseTypePostgres = "postgres"

	// DatabaseTypeRedis stores clusters in redis.
	DatabaseTypeRedis = "redis"
)

const (
	// DefaultConfigPath is the path of the manager configuration file.
	DefaultConfigPath = "/etc/esconnector/manager.yaml"

	// DefaultLogDir is the directory of the manager log files.
	DefaultLogDir = "/var/log/esconnector"

	// DefaultRESTAddr is the default listen address of the rest server.
	DefaultRESTAddr = ":8080"

	// DefaultProbeTimeout is the timeout used when a cluster has none.
	DefaultProbeTimeout = 30 * time.Second

	// DefaultProbeCacheTTL is the ttl of cached health results.
	DefaultProbeCacheTTL = 10 * time.Second
)

type Config struct {
	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Database configuration.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Cache configuration.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Probe configuration.
	Probe ProbeConfig `yaml:"probe" mapstructure:"probe"`

	// Telemetry configuration.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// Verbose prints debug logs and gin debug routes.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Console writes logs to stdout instead of files.
	Console bool `yaml:"console" mapstructure:"console"`

	// PProfPort is the port of the pprof and statsview server in verbose
	// mode, zero picks a free port.
	PProfPort int `yaml:"pprofPort" mapstructure:"pprofPort"`
}

type ServerConfig struct {
	// Server name.
	Name string `yaml:"name" mapstructure:"name"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// REST server configuration.
	REST RestConfig `yaml:"rest" mapstructure:"rest"`
}

type RestConfig struct {
	// REST server address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Database type, one of mysql, postgres and redis.
	Type string `yaml:"type" mapstructure:"type"`

	// Mysql configuration.
	Mysql MysqlConfig `yaml:"mysql" mapstructure:"mysql"`

	// Postgres configuration.
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`

	// Redis configuration.
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

type MysqlConfig struct {
	// Server username.
	User string `yaml:"user" mapstructure:"user"`

	// Server password.
	Password string `yaml:"password" mapstructure:"password"`

	// Server host.
	Host string `yaml:"host" mapstructure:"host"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server DB name.
	DBName string `yaml:"dbname" mapstructure:"dbname"`

	// Enable migration.
	Migrate bool `yaml:"migrate" mapstructure:"migrate"`

	// TLS configuration.
	TLS *MysqlTLSClientConfig `yaml:"tls" mapstructure:"tls"`
}

type MysqlTLSClientConfig struct {
	// Client certificate file path.
	Cert string `yaml:"cert" mapstructure:"cert"`

	// Client key file path.
	Key string `yaml:"key" mapstructure:"key"`

	// CA file path.
	CA string `yaml:"ca" mapstructure:"ca"`

	// InsecureSkipVerify controls whether a client verifies the
	// server's certificate chain and host name.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify" mapstructure:"insecureSkipVerify"`
}

type PostgresConfig struct {
	// Server username.
	User string `yaml:"user" mapstructure:"user"`

	// Server password.
	Password string `yaml:"password" mapstructure:"password"`

	// Server host.
	Host string `yaml:"host" mapstructure:"host"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server DB name.
	DBName string `yaml:"dbname" mapstructure:"dbname"`

	// SSL mode.
	SSLMode string `yaml:"sslMode" mapstructure:"sslMode"`

	// Disable prepared statements.
	PreferSimpleProtocol bool `yaml:"preferSimpleProtocol" mapstructure:"preferSimpleProtocol"`

	// Timezone.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`

	// Enable migration.
	Migrate bool `yaml:"migrate" mapstructure:"migrate"`
}

type RedisConfig struct {
	// Server addresses, more than one address means cluster mode.
	Addrs []string `yaml:"addrs" mapstructure:"addrs"`

	// Server username.
	Username string `yaml:"username" mapstructure:"username"`

	// Server password.
	Password string `yaml:"password" mapstructure:"password"`

	// Server DB.
	DB int `yaml:"db" mapstructure:"db"`
}

type CacheConfig struct {
	// Redis cache configuration.
	Redis RedisCacheConfig `yaml:"redis" mapstructure:"redis"`

	// Local cache configuration.
	Local LocalCacheConfig `yaml:"local" mapstructure:"local"`
}

type RedisCacheConfig struct {
	// Cache ttl.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type LocalCacheConfig struct {
	// Size of LFU cache.
	Size int `yaml:"size" mapstructure:"size"`

	// Cache ttl.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type TelemetryConfig struct {
	// Jaeger collector endpoint, tracing is disabled when empty.
	Jaeger string `yaml:"jaeger" mapstructure:"jaeger"`

	// Ratio of sampled traces.
	SampleRatio float64 `yaml:"sampleRatio" mapstructure:"sampleRatio"`
}

type ProbeConfig struct {
	// Timeout used for clusters that carry no timeout option.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Enable caching of health results.
	EnableCache bool `yaml:"enableCache" mapstructure:"enableCache"`

	// TTL of cached health results, zero uses the redis cache ttl.
	CacheTTL time.Duration `yaml:"cacheTTL" mapstructure:"cacheTTL"`
}

// New config instance.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Name:   "esconnector-manager",
			LogDir: DefaultLogDir,
			REST: RestConfig{
				Addr: DefaultRESTAddr,
			},
		},
		Database: DatabaseConfig{
			Type: DatabaseTypeMysql,
			Mysql: MysqlConfig{
				Port:    3306,
				Migrate: true,
			},
			Postgres: PostgresConfig{
				Port:     5432,
				SSLMode:  "disable",
				Timezone: "UTC",
				Migrate:  true,
			},
			Redis: RedisConfig{
				Addrs: []string{"127.0.0.1:6379"},
			},
		},
		Cache: CacheConfig{
			Redis: RedisCacheConfig{
				TTL: 5 * time.Minute,
			},
			Local: LocalCacheConfig{
				Size: 1000,
				TTL:  30 * time.Second,
			},
		},
		Probe: ProbeConfig{
			Timeout:     DefaultProbeTimeout,
			EnableCache: true,
			CacheTTL:    DefaultProbeCacheTTL,
		},
		Telemetry: TelemetryConfig{
			SampleRatio: 1,
		},
	}
}

// Validate config parameters, every violation is reported.
func (cfg *Config) Validate() error {
	var result *multierror.Error

	if cfg.Server.REST.Addr == "" {
		result = multierror.Append(result, errors.New("server requires parameter rest.addr"))
	}

	switch cfg.Database.Type {
	case DatabaseTypeMysql:
		result = multierror.Append(result, cfg.Database.Mysql.validate()...)
	case DatabaseTypePostgres:
		result = multierror.Append(result, cfg.Database.Postgres.validate()...)
	case DatabaseTypeRedis:
	default:
		result = multierror.Append(result, fmt.Errorf("invalid database type %q", cfg.Database.Type))
	}

	if len(cfg.Database.Redis.Addrs) == 0 {
		result = multierror.Append(result, errors.New("redis requires parameter addrs"))
	}

	if cfg.Cache.Local.Size <= 0 {
		result = multierror.Append(result, errors.New("local cache requires parameter size"))
	}

	if cfg.Probe.Timeout <= 0 {
		result = multierror.Append(result, errors.New("probe requires parameter timeout"))
	}

	if cfg.Probe.CacheTTL < 0 {
		result = multierror.Append(result, errors.New("probe parameter cacheTTL must not be negative"))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		result = multierror.Append(result, errors.New("telemetry requires parameter sampleRatio between 0 and 1"))
	}

	return result.ErrorOrNil()
}

func (cfg *MysqlConfig) validate() []error {
	var errs []error
	if cfg.User == "" {
		errs = append(errs, errors.New("mysql requires parameter user"))
	}

	if cfg.Password == "" {
		errs = append(errs, errors.New("mysql requires parameter password"))
	}

	if cfg.Host == "" {
		errs = append(errs, errors.New("mysql requires parameter host"))
	}

	if cfg.Port <= 0 {
		errs = append(errs, errors.New("mysql requires parameter port"))
	}

	if cfg.DBName == "" {
		errs = append(errs, errors.New("mysql requires parameter dbname"))
	}

	if cfg.TLS != nil {
		if cfg.TLS.Cert == "" {
			errs = append(errs, errors.New("tls requires parameter cert"))
		}

		if cfg.TLS.Key == "" {
			errs = append(errs, errors.New("tls requires parameter key"))
		}

		if cfg.TLS.CA == "" {
			errs = append(errs, errors.New("tls requires parameter ca"))
		}
	}

	return errs
}

func (cfg *PostgresConfig) validate() []error {
	var errs []error
	if cfg.User == "" {
		errs = append(errs, errors.New("postgres requires parameter user"))
	}

	if cfg.Password == "" {
		errs = append(errs, errors.New("postgres requires parameter password"))
	}

	if cfg.Host == "" {
		errs = append(errs, errors.New("postgres requires parameter host"))
	}

	if cfg.Port <= 0 {
		errs = append(errs, errors.New("postgres requires parameter port"))
	}

	if cfg.DBName == "" {
		errs = append(errs, errors.New("postgres requires parameter dbname"))
	}

	return errs
}
