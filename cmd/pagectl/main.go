// pagectl composes CMS pages from the command line.
package main

import (
	"os"

	"cms-admin/internal/config"
	"cms-admin/internal/logger"
)

func main() {
	config.LoadConfig()
	logger.Setup(config.AppConfig.Environment, config.AppConfig.LogLevel)

	if err := newRootCmd(config.AppConfig, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
