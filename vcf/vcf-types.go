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

// Package vcf parses the parts of VCF files that genoh5 stores in
// its HDF5 output: the SNP positions and alleles, the GT genotypes,
// and the GP/GL genotype probabilities.
package vcf

// The supported VCF file format version prefix.
const fileFormatVersionLinePrefix = "##fileformat=VCFv4."

// DefaultHeaderColumns for VCF files.
var DefaultHeaderColumns = []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

type (
	// Header section of a VCF file. Meta holds the raw
	// meta-information lines, without their leading ##.
	Header struct {
		FileFormat string
		Meta       []string
		Columns    []string
		Samples    []string
	}

	// Snp is the information extracted from one VCF data line.
	//
	// Alleles holds two allele indices per sample (0 for the
	// reference allele, 1 and up for alternative alleles, -1 for
	// unknown), Phase one flag per sample (1 for phased genotypes),
	// and Probs three genotype probabilities per sample (-1 for
	// missing values). Alleles, Phase, and Probs are nil when the
	// parser was not asked for them.
	Snp struct {
		Chrom   string
		Pos     int64
		Name    string
		Ref     string
		Alt     []string
		Alleles []int8
		Phase   []int8
		Probs   []float32
	}

	// SnpParser controls which parts of the VCF data lines are
	// parsed.
	SnpParser struct {
		NSamples      int
		WithGenotypes bool
		WithProbs     bool
	}
)
