package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/warpdl/cookex/internal/browsers/chromium"
	"github.com/warpdl/cookex/internal/browsers/firefox"
	"github.com/warpdl/cookex/internal/platform"
)

func browsers(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, "browsers")
	}
	p := platform.Current()
	fs := afero.NewOsFs()
	paths := defaultDiscoveryPaths(p)

	type found struct {
		name  string
		store string
	}
	var stores []found
	for _, profile := range chromium.Discover(fs, paths.ChromiumBases) {
		stores = append(stores, found{profile.Browser, profile.CookiePath})
	}
	if paths.SafariStore != "" {
		if _, err := fs.Stat(paths.SafariStore); err == nil {
			stores = append(stores, found{"Safari", paths.SafariStore})
		}
	}
	for _, storePath := range firefox.Discover(fs, paths.FirefoxBase) {
		stores = append(stores, found{"Firefox", storePath})
	}

	if len(stores) == 0 {
		fmt.Println("cookex: no browser cookie stores found")
		return nil
	}
	fmt.Printf("Found %d browser cookie stores:\n\n", len(stores))
	for _, s := range stores {
		fmt.Printf("  %-14s %s\n", s.name, s.store)
	}
	return nil
}
