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

// Package snptab manages the per-chromosome SNP tables and the
// datasets that are indexed by their row numbers: the SNP position
// index, the haplotype and phase matrices, and the genotype
// probability matrix. One row number refers to the same SNP in all
// of these datasets.
package snptab

import (
	"log"

	"github.com/exascience/genoh5/chrom"
	"github.com/exascience/genoh5/h5"
)

// Fixed field sizes in the SNP table. Longer names and alleles are
// truncated.
const (
	MaxNameLength   = 16
	MaxAlleleLength = 100
)

// SNP is one row in a SNP table.
type SNP struct {
	Name    [MaxNameLength]byte
	Pos     int64
	Allele1 [MaxAlleleLength]byte
	Allele2 [MaxAlleleLength]byte
}

func truncate(dst []byte, s, what string, pos int64) {
	if len(s) > len(dst) {
		log.Printf("Warning: truncating %v %v at position %v to %v characters.\n", len(s), what, pos, len(dst))
		s = s[:len(dst)]
	}
	copy(dst, s)
}

// NewSNP builds a SNP table row, truncating the name and alleles to
// their fixed field sizes.
func NewSNP(name string, pos int64, allele1, allele2 string) (snp SNP) {
	snp.Pos = pos
	truncate(snp.Name[:], name, "name", pos)
	truncate(snp.Allele1[:], allele1, "allele", pos)
	truncate(snp.Allele2[:], allele2, "allele", pos)
	return snp
}

// Table is the SNP table of one chromosome.
type Table struct {
	Chrom *chrom.Chromosome
	SNPs  []SNP
}

// NewTable creates an empty SNP table for the given chromosome.
func NewTable(chromosome *chrom.Chromosome) *Table {
	return &Table{Chrom: chromosome}
}

// Append adds a SNP as the next row of the table and returns its row
// number.
func (t *Table) Append(snp SNP) int {
	t.SNPs = append(t.SNPs, snp)
	return len(t.SNPs) - 1
}

// NumSNPs returns the number of rows in the table.
func (t *Table) NumSNPs() int {
	return len(t.SNPs)
}

// Write stores the table as a 1-D compound dataset named after the
// chromosome.
func (t *Table) Write(out *h5.File) {
	out.WriteTable(t.Chrom.Name, t.SNPs)
}
