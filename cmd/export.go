package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/warpdl/cookex/cmd/common"
	"github.com/warpdl/cookex/internal/browsers/chromium"
	"github.com/warpdl/cookex/internal/browsers/firefox"
	"github.com/warpdl/cookex/internal/browsers/safari"
	"github.com/warpdl/cookex/internal/crypt"
	"github.com/warpdl/cookex/internal/export"
	"github.com/warpdl/cookex/internal/platform"
	"github.com/warpdl/cookex/internal/secrets"
	"github.com/warpdl/cookex/internal/timeconv"
	"github.com/warpdl/cookex/pkg/logger"
)

var (
	outputPath    string
	browserFilter string
	timeout       time.Duration
	runParallel   bool
	debugMode     bool

	exFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "path of the CSV file to write",
			Value:       DEF_OUTPUT,
			Destination: &outputPath,
		},
		cli.StringFlag{
			Name:        "browser, b",
			Usage:       "only export from browsers whose name matches (e.g. Chrome)",
			Destination: &browserFilter,
		},
		cli.DurationFlag{
			Name:        "timeout, t",
			Usage:       "time limit for key store and cookie store access",
			Value:       DEF_TIMEOUT,
			Destination: &timeout,
		},
		cli.BoolFlag{
			Name:        "parallel, p",
			Usage:       "use this flag to read all browsers concurrently (default: false)",
			Destination: &runParallel,
		},
		cli.BoolFlag{
			Name:        "debug, d",
			Usage:       "use this flag to log probed store paths (default: false)",
			Destination: &debugMode,
		},
	}
)

// discoveryPaths bundles the per-platform locations sources are probed at.
// Production fills it from the environment; tests point it at fixtures.
type discoveryPaths struct {
	ChromiumBases []string
	FirefoxBase   string
	SafariStore   string
}

func defaultDiscoveryPaths(p platform.Platform) discoveryPaths {
	paths := discoveryPaths{
		ChromiumBases: chromium.DefaultBasePaths(p),
		FirefoxBase:   firefox.DefaultProfileBase(p),
	}
	if p == platform.Darwin {
		paths.SafariStore = safari.DefaultStorePath()
	}
	return paths
}

func defaultSecretStore(p platform.Platform) secrets.Store {
	if p == platform.Darwin {
		return secrets.NewKeychainStore()
	}
	return secrets.NewKeyringStore()
}

func defaultUnprotect(p platform.Platform) crypt.UnprotectFunc {
	if p == platform.Windows {
		return secrets.Unprotect
	}
	return nil
}

// buildSources assembles every readable source in export order: Chromium
// profiles in discovery order, Safari, then Firefox. An empty filter keeps
// everything; otherwise only sources whose name contains the filter survive.
func buildSources(fs afero.Fs, p platform.Platform, paths discoveryPaths, store secrets.Store, unprotect crypt.UnprotectFunc, times *timeconv.Normalizer, lg logger.Logger, filter string) []export.Source {
	var sources []export.Source
	for _, profile := range chromium.Discover(fs, paths.ChromiumBases) {
		lg.Debug("found %s cookie store at %s", profile.Browser, profile.CookiePath)
		sources = append(sources, chromium.New(profile, fs, p, store, unprotect, times, lg))
	}
	if paths.SafariStore != "" {
		if _, err := fs.Stat(paths.SafariStore); err == nil {
			lg.Debug("found Safari cookie store at %s", paths.SafariStore)
			sources = append(sources, safari.New(paths.SafariStore, fs, times, lg))
		}
	}
	for _, storePath := range firefox.Discover(fs, paths.FirefoxBase) {
		lg.Debug("found Firefox cookie store at %s", storePath)
		sources = append(sources, firefox.New(storePath, fs, times, lg))
	}
	if filter == "" {
		return sources
	}
	var kept []export.Source
	for _, src := range sources {
		if strings.Contains(strings.ToLower(src.Name()), strings.ToLower(filter)) {
			kept = append(kept, src)
		}
	}
	return kept
}

func exportCookies(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, "export")
	}
	lg := logger.NewStandardLogger(log.New(os.Stderr, "", 0), debugMode)
	p := platform.Current()
	fs := afero.NewOsFs()
	times := timeconv.New(time.Local)

	sources := buildSources(fs, p, defaultDiscoveryPaths(p), defaultSecretStore(p), defaultUnprotect(p), times, lg, browserFilter)
	if len(sources) == 0 {
		fmt.Println("cookex: no browser cookie stores found")
		return nil
	}

	cctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	progress := mpb.New(mpb.WithOutput(os.Stderr))
	bar := common.InitSourceBar(progress, int64(len(sources)))
	runner := &export.Runner{
		Log:      lg,
		Parallel: runParallel,
		OnSourceDone: func(string, int) {
			bar.Increment()
		},
	}
	records := runner.Run(cctx, sources)
	progress.Wait()

	f, err := os.Create(outputPath)
	if err != nil {
		common.PrintRuntimeErr(ctx, "export", "create_output", err)
		return err
	}
	defer f.Close()
	if err := export.WriteCSV(f, records); err != nil {
		common.PrintRuntimeErr(ctx, "export", "write_csv", err)
		return err
	}

	fmt.Printf("cookex: exported %d cookies from %d sources to %s\n", len(records), len(sources), outputPath)
	return nil
}
