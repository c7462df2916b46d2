// Package main is the entry point for moos.
package main

import (
	"github.com/moos-cli/moos/cmd"
	"github.com/moos-cli/moos/config"
	"github.com/moos-cli/moos/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
