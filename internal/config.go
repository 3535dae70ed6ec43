// genoh5: tools for converting genomic data to HDF5 files.
// Copyright (c) 2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/exascience/genoh5/blob/master/LICENSE.txt>.

package internal

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config collects ambient settings that can be overridden through
// GENOH5_* environment variables. Command line flags take precedence
// over these values.
type Config struct {
	// LogPath is the default directory for log files (GENOH5_LOG_PATH).
	LogPath string `envconfig:"log_path"`
	// NoProgress disables progress bars (GENOH5_NO_PROGRESS).
	NoProgress bool `envconfig:"no_progress"`
}

// LoadConfig reads the ambient configuration from the environment.
func LoadConfig() (cfg Config) {
	if err := envconfig.Process("genoh5", &cfg); err != nil {
		log.Panic(err)
	}
	return cfg
}
