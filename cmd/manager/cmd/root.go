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


package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/esconnector/esconnector/cmd/dependency"
	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager"
	"github.com/esconnector/esconnector/manager/config"
	"github.com/esconnector/esconnector/manager/router"
)

const (
	managerEnvPrefix = "esconnector"
)

var (
	cfgFile = config.DefaultConfigPath

	// Initialize default manager config
	cfg = config.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manager",
	Short: "the elasticsearch cluster manager of esconnector",
	Long: `manager is a long-running process and is mainly responsible
for storing elasticsearch cluster connections, keeping exactly one of
them as the default connection and reporting their health, offering http apis.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		required := cmd.Flags().Changed("config")
		if err := dependency.InitConfig(cfgFile, required, managerEnvPrefix, cfg); err != nil {
			return errors.Wrap(err, "init manager config")
		}

		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "validate manager config")
		}

		// Initialize logger
		if err := logger.InitManager(cfg.Verbose, cfg.Console, cfg.Server.LogDir); err != nil {
			return errors.Wrap(err, "init manager logger")
		}

		return runManager()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Add flags
	flagSet := rootCmd.Flags()
	flagSet.StringVar(&cfgFile, "config", cfgFile, "the path of configuration file with yaml extension name")
	flagSet.BoolVar(&cfg.Console, "console", cfg.Console, "whether logger output records to the stdout")
	flagSet.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "whether logger use debug level")
	flagSet.IntVar(&cfg.PProfPort, "pprof-port", cfg.PProfPort, "listen port for pprof, 0 represents random port")

	// Add sub commands
	rootCmd.AddCommand(dependency.VersionCmd)
}

func runManager() error {
	// manager config values
	s, _ := yaml.Marshal(cfg)
	logger.Infof("manager configuration:\n%s", string(s))

	// initialize verbose mode
	dependency.InitVerboseMode(cfg.Verbose, cfg.PProfPort)

	// initialize tracing
	if cfg.Telemetry.Jaeger != "" {
		shutdown, err := dependency.InitTracer(router.OtelServiceName, cfg.Telemetry.Jaeger, cfg.Telemetry.SampleRatio)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	svr, err := manager.New(cfg)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(svr.Stop)
	return svr.Serve()
}
