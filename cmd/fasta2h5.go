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

package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exascience/genoh5/chrom"
	"github.com/exascience/genoh5/h5"
	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/seq"
)

// Fasta2h5Help is the help string for the fasta2h5 tool.
const Fasta2h5Help = "fasta2h5 parameters:\n" +
	"fasta2h5 --chrom chromInfo.txt\n" +
	"         --seq seq.h5\n" +
	"         [--log-path path]\n" +
	"         file...\n"

// Fasta2h5 implements the fasta2h5 tool.
func Fasta2h5() {
	cfg := internal.LoadConfig()

	var chromFile, seqFile, logPath string

	var flags flag.FlagSet
	flags.StringVar(&chromFile, "chrom", "", "chromInfo file with chromosome names and lengths")
	flags.StringVar(&seqFile, "seq", "", "output HDF5 file for chromosome sequences")
	flags.StringVar(&logPath, "log-path", cfg.LogPath, "write log files to the specified directory")
	inputs := parseFlags(flags, Fasta2h5Help)

	sanityChecksFailed := false

	if !checkExist("--chrom", chromFile) {
		sanityChecksFailed = true
	}
	if !checkCreate("--seq", seqFile) {
		sanityChecksFailed = true
	}
	if len(inputs) == 0 {
		log.Println("Error: No input files.")
		sanityChecksFailed = true
	}
	for _, input := range inputs {
		if !checkExist("", input) {
			sanityChecksFailed = true
		}
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, Fasta2h5Help)
		os.Exit(1)
	}

	setLogOutput(logPath, ProgramMessage("fasta2h5"))

	timedRun(true, "", "Converting FASTA sequences to HDF5.", 1, func() {
		runFasta2h5(chromFile, seqFile, inputs, cfg.NoProgress)
	})
}

func runFasta2h5(chromFile, seqFile string, inputs []string, noProgress bool) {
	chromosomes := chrom.ParseChromInfo(chromFile)

	out := h5.Create(seqFile)
	converted := make(map[string]bool)

	bar := startProgress(len(inputs), noProgress)
	for _, input := range inputs {
		sequence := seq.FromFastaFile(chromosomes, input)
		if converted[sequence.Chrom.Name] {
			log.Panicf("multiple input files for chromosome %v", sequence.Chrom.Name)
		}
		converted[sequence.Chrom.Name] = true
		log.Printf("Read %v bases for chromosome %v from %v.\n", len(sequence.Bases), sequence.Chrom.Name, input)
		sequence.Write(out)
		incrementProgress(bar)
	}
	finishProgress(bar)

	out.Close()
}
