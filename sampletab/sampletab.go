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

// Package sampletab manages the table of sample names that
// accompanies the haplotype and genotype probability files. The
// column order of those datasets follows the row order of this
// table.
package sampletab

import (
	"bufio"
	"bytes"
	"log"

	"github.com/exascience/genoh5/h5"
	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/utils"
)

// MaxNameLength is the fixed field size of a sample name. Longer
// names are truncated.
const MaxNameLength = 64

// Sample is one row in a samples table.
type Sample struct {
	Name [MaxNameLength]byte
}

// Table is an ordered list of samples.
type Table []Sample

// FromNames builds a sample table from a list of sample names,
// truncating names to the fixed field size.
func FromNames(names []string) (table Table) {
	table = make(Table, len(names))
	for i, name := range names {
		if len(name) > MaxNameLength {
			log.Printf("Warning: truncating sample name %v to %v characters.\n", name, MaxNameLength)
			name = name[:MaxNameLength]
		}
		copy(table[i].Name[:], name)
	}
	return table
}

// FromFile builds a sample table from a text file with one sample
// per line. Only the first whitespace-separated token of each line
// is used; empty lines are skipped. The file may be gzip compressed.
func FromFile(filename string) Table {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	var names []string
	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(f)))
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) == 0 {
			continue
		}
		names = append(names, string(fields[0]))
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	if len(names) == 0 {
		log.Panicf("empty samples file %v", filename)
	}
	return FromNames(names)
}

// Names returns the sample names in row order.
func (t Table) Names() (names []string) {
	names = make([]string, len(t))
	for i, sample := range t {
		name := sample.Name[:]
		if end := bytes.IndexByte(name, 0); end >= 0 {
			name = name[:end]
		}
		names[i] = string(name)
	}
	return names
}

// Equal determines whether two sample tables list the same samples
// in the same order.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Write stores the table as a 1-D compound dataset named "samples".
func (t Table) Write(out *h5.File) {
	out.WriteTable("samples", []Sample(t))
}
