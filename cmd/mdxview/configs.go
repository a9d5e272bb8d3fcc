package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/quantfold/mdx"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='force colored output'"`
	NoColor bool   `cli:"name=no-color desc='disable colored output'"`
	Root    string `cli:"name=root desc='message type used as the root element name'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors resolves the palette: explicit flags win, otherwise color tracks
// whether stdout is a terminal.
func (cfg *MainConfig) colors() *mdx.Colors {
	if cfg.NoColor {
		return nil
	}
	if cfg.Color || isatty.IsTerminal(os.Stdout.Fd()) {
		return mdx.NewColors()
	}
	return nil
}

func (cfg *MainConfig) rootName() string {
	if cfg.Root == "" {
		return "Message"
	}
	return cfg.Root
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DecodeConfig struct {
	*MainConfig
	Indent bool `cli:"name=indent desc='indent JSON output'"`

	Decode *cli.Command
}
