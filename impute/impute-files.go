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

// Package impute parses IMPUTE2 genotype and haplotype files.
//
// Both file kinds are whitespace-separated with five leading
// columns: a SNP identifier, an rs identifier, the base position,
// and the two alleles. Genotype files follow with three genotype
// probabilities per sample, haplotype files with two alleles per
// sample. Haplotype files are recognized by "_haps" in the file
// name.
package impute

import (
	"bufio"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/utils"

	"github.com/exascience/pargo/pipeline"
)

// numLeadingColumns is the number of columns before the per-sample
// values.
const numLeadingColumns = 5

// IsHapsFile determines whether the given file name names an IMPUTE2
// haplotype file rather than a genotype file.
func IsHapsFile(filename string) bool {
	return strings.Contains(filepath.Base(filename), "_haps")
}

// Snp is the information extracted from one IMPUTE2 line. The name
// is taken from the rs identifier column. Probs holds three genotype
// probabilities per sample for genotype files; Alleles holds two
// allele indices per sample for haplotype files (-1 for unknown).
type Snp struct {
	Name    string
	Pos     int64
	Allele1 string
	Allele2 string
	Probs   []float32
	Alleles []int8
}

func parseAllele(field string) (int8, error) {
	switch field {
	case "-", "?", "NA":
		return -1, nil
	}
	i, err := strconv.ParseInt(field, 10, 8)
	if err != nil {
		return -1, fmt.Errorf("invalid allele %v in an IMPUTE2 haplotype line", field)
	}
	return int8(i), nil
}

func parseSnp(line string, haps bool) (*Snp, error) {
	fields := strings.Fields(line)
	if len(fields) < numLeadingColumns {
		return nil, fmt.Errorf("invalid number of columns in an IMPUTE2 line: %v", line)
	}
	pos, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, err
	}
	snp := &Snp{
		Name:    fields[1],
		Pos:     pos,
		Allele1: fields[3],
		Allele2: fields[4],
	}
	values := fields[numLeadingColumns:]
	if haps {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("odd number of alleles in an IMPUTE2 haplotype line: %v", line)
		}
		snp.Alleles = make([]int8, len(values))
		for i, field := range values {
			if snp.Alleles[i], err = parseAllele(field); err != nil {
				return nil, err
			}
		}
	} else {
		if len(values)%3 != 0 {
			return nil, fmt.Errorf("number of genotype probabilities is not a multiple of 3 in an IMPUTE2 line: %v", line)
		}
		snp.Probs = make([]float32, len(values))
		for i, field := range values {
			value, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, err
			}
			snp.Probs[i] = float32(value)
		}
	}
	return snp, nil
}

// NSamples returns the number of samples covered by the line the SNP
// was parsed from.
func (snp *Snp) NSamples() int {
	if snp.Alleles != nil {
		return len(snp.Alleles) / 2
	}
	return len(snp.Probs) / 3
}

// ReadSnpFile reads all SNPs from an IMPUTE2 file, parsing the lines
// in parallel. The file kind is determined from the file name. The
// file may be plain text, gzip, or BGZF compressed. All lines must
// cover the same number of samples.
func ReadSnpFile(filename string) (snps []*Snp) {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	haps := IsHapsFile(filename)
	reader := bufio.NewReader(utils.HandleGzip(bufio.NewReader(f)))

	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		result := make([]*Snp, 0, len(lines))
		for _, line := range lines {
			if len(line) == 0 {
				continue
			}
			snp, err := parseSnp(line, haps)
			if err != nil {
				p.SetErr(fmt.Errorf("%v in %v", err, filename))
				return result
			}
			result = append(result, snp)
		}
		return result
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		snps = append(snps, data.([]*Snp)...)
		return data
	})))
	internal.RunPipeline(&p)

	for _, snp := range snps {
		if snp.NSamples() != snps[0].NSamples() {
			log.Panicf("inconsistent number of samples in IMPUTE2 file %v", filename)
		}
	}
	return snps
}
