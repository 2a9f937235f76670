package config

// CliOnlyOptions are options that can only be given on the command line, never in a config file.
type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
	Debug      bool
}
