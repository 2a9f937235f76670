package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anchore/check-pyproject/internal/config"
	"github.com/anchore/check-pyproject/pyproject/presenter"
)

var persistentOpts = config.CliOnlyOptions{}

func setGlobalCliOptions() {
	rootCmd.PersistentFlags().StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	rootCmd.PersistentFlags().CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
	rootCmd.PersistentFlags().BoolVar(&persistentOpts.Debug, "debug", false, "show debug messages (same as -vv)")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"output", "o", presenter.TablePresenter.String(),
		fmt.Sprintf("report output format, options=%v", presenter.Options),
	)

	flags.BoolP(
		"quiet", "q", false,
		"only log errors and suppress the report",
	)

	flags.String(
		"log-file", "",
		"also write log messages to the given file",
	)
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	if err := viper.BindPFlag("output", flags.Lookup("output")); err != nil {
		return err
	}

	if err := viper.BindPFlag("quiet", flags.Lookup("quiet")); err != nil {
		return err
	}

	if err := viper.BindPFlag("log.file", flags.Lookup("log-file")); err != nil {
		return err
	}

	return nil
}
