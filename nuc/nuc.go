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

// Package nuc defines the nucleotide alphabet used in genoh5
// sequence datasets. Sequences are stored as ASCII codes, restricted
// to the upper case characters A, C, G, T, and N.
package nuc

// The ASCII codes stored in sequence datasets.
const (
	A = 'A'
	C = 'C'
	G = 'G'
	T = 'T'
	N = 'N'
)

var iupacUpperTable = map[byte]byte{
	'A': 'A', 'a': 'A',
	'C': 'C', 'c': 'C',
	'G': 'G', 'g': 'G',
	'T': 'T', 't': 'T',
	'N': 'N', 'n': 'N',
	'R': 'N', 'r': 'N',
	'Y': 'N', 'y': 'N',
	'M': 'N', 'm': 'N',
	'K': 'N', 'k': 'N',
	'W': 'N', 'w': 'N',
	'S': 'N', 's': 'N',
	'B': 'N', 'b': 'N',
	'D': 'N', 'd': 'N',
	'H': 'N', 'h': 'N',
	'V': 'N', 'v': 'N',
}

// ToUpperAndN normalizes a FASTA character to the genoh5 alphabet:
// lower case characters are converted to upper case, and IUPAC
// ambiguity codes become N. Characters outside the IUPAC alphabet
// are returned unchanged; use IsValid to reject them.
func ToUpperAndN(base byte) byte {
	if n, ok := iupacUpperTable[base]; ok {
		return n
	}
	return base
}

// IsValid determines whether the given character is part of the
// IUPAC nucleotide alphabet, in either case.
func IsValid(base byte) bool {
	_, ok := iupacUpperTable[base]
	return ok
}
