package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/check-pyproject/internal"
	"github.com/anchore/check-pyproject/internal/config"
	"github.com/anchore/check-pyproject/internal/log"
	"github.com/anchore/check-pyproject/internal/logger"
	"github.com/anchore/check-pyproject/internal/version"
	"github.com/anchore/check-pyproject/pyproject"
	"github.com/anchore/check-pyproject/pyproject/checkerr"
)

var (
	appConfig         *config.Application
	appLogger         *logger.LogrusLogger
	eventBus          *partybus.Bus
	eventSubscription *partybus.Subscription
)

func init() {
	cobra.OnInitialize(
		initRootCmdConfigOptions,
		initAppConfig,
		initLogging,
		logAppConfig,
		logAppVersion,
		initEventBus,
	)
}

// Execute runs the root command and exits with the number of problems found (capped at 255), or 1 when the
// command itself failed.
func Execute() {
	err := rootCmd.Execute()
	if appLogger != nil {
		_ = appLogger.Close()
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, checkerr.ErrProblemsFound) {
		var problems checkerr.ProblemsFoundError
		if errors.As(err, &problems) {
			return problems.ExitCode()
		}
		return 1
	}
	_ = stderrPrintLnf(err.Error())
	return 1
}

func initRootCmdConfigOptions() {
	if err := bindRootConfigOptions(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func initAppConfig() {
	cfg, err := config.LoadApplicationConfig(viper.GetViper(), persistentOpts)
	if err != nil {
		fmt.Printf("failed to load application config: \n\t%+v\n", err)
		os.Exit(1)
	}
	appConfig = cfg
}

func initLogging() {
	cfg := logger.LogrusConfig{
		EnableConsole: appConfig.Log.FileLocation == "" || appConfig.CliOptions.Verbosity > 0 || appConfig.CliOptions.Debug,
		EnableFile:    appConfig.Log.FileLocation != "",
		Level:         appConfig.Log.LevelOpt,
		Structured:    appConfig.Log.Structured,
		FileLocation:  appConfig.Log.FileLocation,
	}

	logWrapper, err := logger.NewLogrusLogger(cfg)
	if err != nil {
		fmt.Printf("failed to setup logging: \n\t%+v\n", err)
		os.Exit(1)
	}
	appLogger = logWrapper

	pyproject.SetLogger(logWrapper)
}

func logAppConfig() {
	log.Debugf("application config:\n%+v", color.Magenta.Sprint(appConfig.String()))
}

func logAppVersion() {
	versionInfo := version.FromBuild()
	log.Infof("%s version: %s", internal.ApplicationName, versionInfo)

	var fields map[string]interface{}
	bytes, err := json.Marshal(versionInfo)
	if err != nil {
		return
	}
	err = json.Unmarshal(bytes, &fields)
	if err != nil {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for idx, field := range keys {
		value := fields[field]
		branch := "├──"
		if idx == len(fields)-1 {
			branch = "└──"
		}
		log.Debugf("  %s %s: %s", branch, field, value)
	}
}

func initEventBus() {
	eventBus = partybus.NewBus()
	eventSubscription = eventBus.Subscribe()

	pyproject.SetBus(eventBus)
}
