// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/net/http/httpproxy"

	"github.com/willyd61/grafana-customTables-panel/logger"
	"github.com/willyd61/grafana-customTables-panel/pkg/buildinfo"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/agent"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/cli"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func init() {
	// time.LoadLocation does not understand the ":Area/City" form.
	if v := os.Getenv("TZ"); strings.HasPrefix(v, ":") {
		_ = os.Unsetenv("TZ")
	}
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("tablepanel, version: %s\n", buildinfo.Version)
		return
	}

	if lvl := logger.EnvLevel(); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	host, err := opts.HostConfig()
	if err != nil {
		logger.Errorf("host config: %v", err)
		os.Exit(1)
	}

	a := agent.New(agent.Config{
		SettingsFile: opts.Settings,
		SettingsPath: opts.SettingsPath,
		Host:         host,
		Format:       opts.Format,
		Output:       opts.Output,
		Watch:        opts.Watch,
		Listen:       opts.Listen,
	})

	a.Infof("tablepanel: %s", buildinfo.Info())

	if host.HTTP != nil {
		proxyCfg := httpproxy.FromEnvironment()
		a.Infof("env HTTP_PROXY '%s', HTTPS_PROXY '%s'", proxyCfg.HTTPProxy, proxyCfg.HTTPSProxy)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Error(err)
		stop()
		os.Exit(1)
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args[1:])
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
