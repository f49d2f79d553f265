// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/upload"
)

var (
	cfgFile string
	envFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "intacctsync",
	Short: "Upload back office records to Sage Intacct",
	Long: `intacctsync posts pending receivables, payables and checks to the
Intacct gateway and records the outcome on each record.  Connection
settings come from a JSON config file (--config or INTACCT_CONFIG);
the environment may be overridden with INTACCT_ENVIRONMENT.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to connection config JSON")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(syncCmd, dimensionCmd, queryCmd, fieldsCmd)
}

func initApp(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		godotenv.Load()
	}
	viper.SetEnvPrefix("intacct")
	viper.AutomaticEnv()

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	return nil
}

// newService builds the gateway service from the config file named by
// --config or INTACCT_CONFIG, with INTACCT_ENVIRONMENT taking
// precedence over the file's environment.
func newService() (*intacct.Service, error) {
	path := cfgFile
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		return nil, fmt.Errorf("no config file: set --config or INTACCT_CONFIG")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	svc, err := intacct.ServiceFromConfigJSON(f)
	if err != nil {
		return nil, err
	}
	if env := viper.GetString("environment"); env != "" {
		svc.Environment = intacct.Environment(env)
	}
	return svc, nil
}

func newClient(store upload.Store) (*upload.Client, error) {
	svc, err := newService()
	if err != nil {
		return nil, err
	}
	return upload.New(svc, store, logger), nil
}

// discardStore satisfies upload.Store for commands that touch no
// local records.
type discardStore struct{}

func (discardStore) SaveReceivable(ctx context.Context, r *upload.Receivable) error { return nil }
func (discardStore) SavePayable(ctx context.Context, p *upload.Payable) error       { return nil }
func (discardStore) SaveCheck(ctx context.Context, c *upload.Check) error           { return nil }
