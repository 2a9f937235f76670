package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal"
	"github.com/anchore/check-pyproject/internal/bus"
	"github.com/anchore/check-pyproject/internal/ui"
	"github.com/anchore/check-pyproject/pyproject"
	"github.com/anchore/check-pyproject/pyproject/checkerr"
	"github.com/anchore/check-pyproject/pyproject/event"
	"github.com/anchore/check-pyproject/pyproject/manifest"
	"github.com/anchore/check-pyproject/pyproject/presenter"
)

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [FILE...]", internal.ApplicationName),
	Short: "Check that the [project] and [tool.poetry] tables of pyproject.toml files are in sync",
	Long: fmt.Sprintf(`Compares the metadata and dependencies declared in the [project] table with those declared in the
[tool.poetry] table. Poetry version constraints (^, ~, *) are translated into standard specifiers
before comparing. With no arguments, ./%s is checked.

The exit status is the number of problems found (capped at 255).`, manifest.FileName),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDefaultCmd,
}

func init() {
	setGlobalCliOptions()
	setRootFlags(rootCmd.Flags())
}

func runDefaultCmd(_ *cobra.Command, args []string) error {
	if appConfig.Dev.ProfileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if appConfig.Dev.ProfileMem {
		defer profile.Start(profile.MemProfile).Stop()
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = appConfig.Files
	}
	paths, err := expandPaths(patterns)
	if err != nil {
		return err
	}

	totals := make(chan int, 1)
	err = eventLoop(
		startWorker(afero.NewOsFs(), paths, appConfig.PresenterOpt, ui.SupportsColor(), totals),
		setupSignals(),
		eventSubscription,
		func() {},
		ui.Select(appConfig.Quiet, os.Stdout),
	)
	if err != nil {
		return err
	}

	select {
	case total := <-totals:
		if total > 0 {
			return checkerr.ProblemsFoundError{Problems: total}
		}
	default:
	}
	return nil
}

// startWorker validates the given manifests in the background, publishing the final report onto the event bus
// and the total problem count onto totals.
func startWorker(fs afero.Fs, paths []string, option presenter.Option, withColor bool, totals chan<- int) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		results := pyproject.ValidateFiles(fs, paths...)
		totals <- pyproject.TotalProblems(results)

		pres := presenter.GetPresenter(option, withColor, results)
		if pres == nil {
			errs <- fmt.Errorf("unknown output option: %s", option)
			return
		}

		bus.Publish(partybus.Event{
			Type:  event.ValidationFinished,
			Value: pres,
		})
	}()
	return errs
}
