// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	viper  *viper.Viper
	logger *log.Logger

	verbose    bool
	configPath string
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		viper:  viper.New(),
	}

	root := &cobra.Command{
		Use:   "multiline",
		Short: "Reflow array and argument lists across lines",
		Long: `multiline reprints JavaScript and TypeScript files, breaking array
literals (and optionally call argument lists) across lines according to
comment directives and configuration.

Directives:
  // prettier-multiline-arrays-next-line-pattern: 2 1   next list only
  // prettier-multiline-arrays-set-line-pattern: 3      until a reset
  // prettier-multiline-arrays-next-threshold: 4        next list only
  // prettier-multiline-arrays-set-threshold: 4         until a reset
  // prettier-multiline-arrays-reset`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.init() },
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.configPath, "config", "", "config file (default is the nearest .multilinerc.{yaml,yml,toml,json})")

	defaults := config.Defaults()
	flags.Int("wrap-threshold", defaults.WrapThreshold, "wrap lists with more elements than this; 0 or less never wraps")
	flags.String("line-pattern", "", "elements per line, as a list of positive integers such as \"2 1\"")
	flags.Bool("wrap-argument-lists", defaults.WrapArgumentLists, "also reflow call argument lists")
	flags.Int("print-width", defaults.PrintWidth, "maximum line width")
	flags.Int("tab-width", defaults.TabWidth, "spaces per indentation level")
	flags.Bool("use-tabs", defaults.UseTabs, "indent with tabs")
	flags.String("trailing-comma", string(defaults.TrailingComma), `trailing commas: "all", "es5" or "none"`)
	a.bind(flags, map[string]string{
		"wrap-threshold":      config.KeyWrapThreshold,
		"line-pattern":        config.KeyLinePattern,
		"wrap-argument-lists": config.KeyWrapArgumentLists,
		"print-width":         config.KeyPrintWidth,
		"tab-width":           config.KeyTabWidth,
		"use-tabs":            config.KeyUseTabs,
		"trailing-comma":      config.KeyTrailingComma,
	})

	root.AddCommand(newFormatCommand(a))
	root.AddCommand(newConfigCommand(a))
	return root
}

// bind makes each flag an override of the config option it names.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := a.viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			// Only reachable if a flag above is misspelled.
			panic(err)
		}
	}
}

// init runs before every subcommand: it sets up logging and reads the
// config file.
func (a *app) init() error {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: "multiline",
		Level:  level,
	})

	path := a.configPath
	if path == "" {
		path, _ = config.Find(".")
	}
	if path != "" {
		a.logger.Debug("using config file", "path", path)
	}
	return config.Read(a.viper, path)
}

// options decodes the effective configuration. Problems with it are
// written to stderr; the defaults are used in their place.
func (a *app) options() config.Options {
	var r report.Report
	opts := config.FromViper(a.viper, &r)
	if err := r.Render(a.stderr); err != nil {
		a.logger.Error("cannot write diagnostics", "err", err)
	}
	return opts
}
