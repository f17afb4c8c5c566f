package main

import (
	"context"
	"errors"

	"counsel-interview/configs"
	"counsel-interview/protocal"

	"github.com/spf13/cobra"
)

// environment opens the configured stores; tests swap it for in-memory ones
type environment struct {
	loadConfig   func(dir, env string) *configs.Config
	buildStorage func(ctx context.Context, cfg *configs.Config) (*protocal.Storage, error)
}

func defaultEnvironment() environment {
	return environment{
		loadConfig: func(dir, env string) *configs.Config {
			configs.InitViper(dir, env)
			return configs.GetViper()
		},
		buildStorage: func(ctx context.Context, cfg *configs.Config) (*protocal.Storage, error) {
			if cfg.Store.Driver == protocal.StoreDriverMemory {
				return nil, errors.New("store.driver is memory; interviewctl needs postgres, sqlite or redis")
			}
			return protocal.BuildStorage(ctx, cfg)
		},
	}
}

type rootOptions struct {
	configDir string
	env       string
}

func newRootCommand(envr environment) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "interviewctl",
		Short:         "Operator tool for interview sessions",
		Long:          "Inspect, repair and reset stored interview sessions, and list the configured topics.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", "./configs", "directory holding config.yaml")
	root.PersistentFlags().StringVar(&opts.env, "env", "", "the environment to use")

	root.AddCommand(newSessionCommand(envr, opts))
	root.AddCommand(newTopicsCommand(envr, opts))
	return root
}
