package config

import "github.com/awantoch/flowsketch/constants"

// DefaultConfigPath is where the CLI looks for a config file when --config is not given.
const DefaultConfigPath = constants.ConfigFileName
