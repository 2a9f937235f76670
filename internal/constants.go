package internal

// ApplicationName is the name used for the binary, config file discovery and environment variable prefixes.
const ApplicationName = "check-pyproject"
