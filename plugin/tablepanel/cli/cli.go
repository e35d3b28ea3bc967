// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/go-homedir"
)

// Option defines command line options.
type Option struct {
	Config       string   `short:"c" long:"config" description:"host config file (yaml) with sources, variables and time range"`
	Settings     string   `short:"s" long:"settings" description:"panel settings file (json or yaml)"`
	SettingsPath string   `short:"p" long:"settings-path" description:"gjson path of the panel inside the settings file"`
	Data         []string `short:"f" long:"data" description:"dataset file glob, \"**\" is supported (repeatable)"`
	URL          string   `short:"u" long:"url" description:"URL answering with dataset JSON"`
	SQLDriver    string   `long:"sql-driver" description:"sql driver" choice:"postgres" choice:"pgx" choice:"mysql" choice:"sqlite"`
	SQLDSN       string   `long:"sql-dsn" description:"sql data source name"`
	SQLQueries   []string `short:"q" long:"query" description:"sql query as refId=query (repeatable)"`
	Vars         []string `long:"var" description:"variable as name=value[,value] (repeatable)"`
	From         string   `long:"from" description:"time range start"`
	To           string   `long:"to" description:"time range end"`
	Format       string   `short:"o" long:"format" description:"output format" default:"html" choice:"html" choice:"json" choice:"csv" choice:"style" choice:"schema"`
	Output       string   `long:"output" description:"output file, stdout when empty"`
	Watch        bool     `short:"w" long:"watch" description:"redraw when the settings or dataset files change"`
	Listen       string   `short:"l" long:"listen" description:"serve the panel over HTTP on this address"`
	Debug        bool     `short:"d" long:"debug" description:"debug mode"`
	Version      bool     `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "tablepanel"
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if err := opt.expandPaths(); err != nil {
		return nil, err
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// expandPaths resolves a leading "~" in file options.
func (o *Option) expandPaths() error {
	paths := []*string{&o.Config, &o.Settings, &o.Output}
	for i := range o.Data {
		paths = append(paths, &o.Data[i])
	}

	for _, p := range paths {
		v, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}
