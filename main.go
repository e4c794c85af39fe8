// Package main is the entry point for the hydra application.
package main

import (
	"github.com/hydra-cli/hydra/cmd"
	"github.com/hydra-cli/hydra/config"
	"github.com/hydra-cli/hydra/internal/cache"
	"github.com/hydra-cli/hydra/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired response cache entries are collected in the background.
	cache.CollectGarbage()

	cmd.Execute()
}
