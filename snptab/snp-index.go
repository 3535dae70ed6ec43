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

package snptab

import (
	"log"

	"github.com/bits-and-blooms/bitset"
	"github.com/exascience/genoh5/h5"
)

// BuildIndex maps every base position of the chromosome to the row
// number of the SNP at that position, or -1 where there is no SNP.
// The index has exactly one element per base of the chromosome.
//
// SNPs with positions outside [1, chromosome length] are reported
// and left out of the index. When several SNPs share a position, the
// later row wins and a warning is logged.
func (t *Table) BuildIndex() []int64 {
	index := make([]int64, t.Chrom.Length)
	for i := range index {
		index[i] = -1
	}
	seen := bitset.New(uint(t.Chrom.Length))
	for row, snp := range t.SNPs {
		if snp.Pos < 1 || snp.Pos > t.Chrom.Length {
			log.Printf("Warning: SNP position %v is outside of chromosome %v (length %v); row %v is not indexed.\n", snp.Pos, t.Chrom.Name, t.Chrom.Length, row)
			continue
		}
		base := uint(snp.Pos - 1)
		if seen.Test(base) {
			log.Printf("Warning: multiple SNPs at position %v of chromosome %v; the index keeps row %v.\n", snp.Pos, t.Chrom.Name, row)
		}
		seen.Set(base)
		index[base] = int64(row)
	}
	return index
}

// WriteIndex stores the index of the table as a 1-D int64 dataset
// named after the chromosome.
func (t *Table) WriteIndex(out *h5.File) {
	out.WriteInt64Vector(t.Chrom.Name, t.BuildIndex())
}
