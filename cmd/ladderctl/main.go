package main

import (
	"os"

	"pingpong-ladder/cli"
	"pingpong-ladder/config"
)

func main() {
	cfg := cli.DefaultConfig()
	if appCfg, err := config.Load(); err == nil {
		cfg.ServerURL = appCfg.ServerURL
	}

	if err := cli.NewRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
