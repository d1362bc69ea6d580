// Package commands wires the CLI surface: each subcommand registers
// itself on the root urfave/cli command and shares global flags.
package commands

import (
	"github.com/zouy50/bookokrat/internal/core/config"
)

// Flags are the global flags shared by all commands. Config is loaded in
// the root Before hook and available to every command action.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	Config *config.Config
}
