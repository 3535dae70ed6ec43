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

// Package chrom manages the table of chromosomes that all genoh5
// datasets are laid out against. The table is read from a UCSC-style
// chromInfo.txt file with the chromosome name in the first column
// and its length in the second.
package chrom

import (
	"bufio"
	"bytes"
	"log"
	"path/filepath"

	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/utils"
)

// Chromosome is an entry in a chromInfo file.
type Chromosome struct {
	Name   string
	Length int64
}

// ParseChromInfo parses a chromInfo file. The file may be plain text
// or gzip compressed. Lines may carry more than two columns; only
// the first two are used. Empty lines are skipped.
func ParseChromInfo(filename string) (chromosomes []*Chromosome) {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(f)))

	seen := make(map[string]bool)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		b := bytes.Split(line, []byte("\t"))
		if len(b) < 2 {
			log.Panicf("badly formatted chromInfo file %v - invalid number of columns", filename)
		}
		name := string(b[0])
		if seen[name] {
			log.Panicf("badly formatted chromInfo file %v - duplicate chromosome %v", filename, name)
		}
		seen[name] = true
		chromosomes = append(chromosomes, &Chromosome{
			Name:   name,
			Length: internal.ParseInt(string(b[1]), 10, 64),
		})
	}

	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}

	if len(chromosomes) == 0 {
		log.Panicf("empty chromInfo file %v", filename)
	}

	return chromosomes
}

// Lookup returns the chromosome with the given name, or nil if the
// table contains no such chromosome.
func Lookup(chromosomes []*Chromosome, name string) *Chromosome {
	for _, chromosome := range chromosomes {
		if chromosome.Name == name {
			return chromosome
		}
	}
	return nil
}

func isWordByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// matchesAt reports whether name occurs in base at the given offset,
// delimited by non-alphanumeric characters or the string boundaries.
// The delimiters make sure that chr1 does not match in chr10.vcf.gz.
func matchesAt(base, name string, offset int) bool {
	if offset+len(name) > len(base) || base[offset:offset+len(name)] != name {
		return false
	}
	if offset > 0 && isWordByte(base[offset-1]) {
		return false
	}
	if end := offset + len(name); end < len(base) && isWordByte(base[end]) {
		return false
	}
	return true
}

// FromFilename guesses which chromosome a file describes by looking
// for chromosome names in the base name of the file. The longest
// matching name wins. It returns nil if no chromosome name occurs in
// the file name.
func FromFilename(chromosomes []*Chromosome, filename string) (match *Chromosome) {
	base := filepath.Base(filename)
	for _, chromosome := range chromosomes {
		if match != nil && len(chromosome.Name) <= len(match.Name) {
			continue
		}
		for offset := 0; offset+len(chromosome.Name) <= len(base); offset++ {
			if matchesAt(base, chromosome.Name, offset) {
				match = chromosome
				break
			}
		}
	}
	return match
}
