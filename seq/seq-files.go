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

// Package seq reads chromosome sequences from FASTA files and writes
// them to HDF5 sequence files.
package seq

import (
	"bufio"
	"log"

	"github.com/exascience/genoh5/chrom"
	"github.com/exascience/genoh5/h5"
	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/nuc"
	"github.com/exascience/genoh5/utils"
)

// Sequence is the full nucleotide sequence of one chromosome,
// stored as ASCII codes restricted to the alphabet of the nuc
// package.
type Sequence struct {
	Chrom *chrom.Chromosome
	Bases []byte
}

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i + 1
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	return string(b[i:j])
}

func initBases(contig string, chromosomes []*chrom.Chromosome) []byte {
	if chromosome := chrom.Lookup(chromosomes, contig); chromosome != nil {
		return make([]byte, 0, chromosome.Length)
	}
	return nil
}

func normalize(filename string, contig string, b []byte) {
	for i, c := range b {
		if !nuc.IsValid(c) {
			log.Panicf("invalid nucleotide %q for contig %v in fasta file %v", c, contig, filename)
		}
		b[i] = nuc.ToUpperAndN(c)
	}
}

// ParseFasta sequentially parses a FASTA file. The file may be plain
// text, gzip, or BGZF compressed.
//
// All sequence characters are converted to upper case, and IUPAC
// ambiguity codes are normalized to N. If the chromosome table
// contains a contig, its sequence is pre-allocated to reduce
// pressure on the garbage collector.
func ParseFasta(filename string, chromosomes []*chrom.Chromosome) (fasta map[string][]byte, contigs []string) {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	scanner := bufio.NewScanner(utils.HandleGzip(bufio.NewReader(f)))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		log.Panicf("empty fasta file %v", filename)
	}
	b := scanner.Bytes()
	for len(b) == 0 {
		if !scanner.Scan() {
			log.Panicf("empty fasta file %v", filename)
		}
		b = scanner.Bytes()
	}
	if b[0] != '>' {
		log.Panicf("invalid fasta file %v - missing first header", filename)
	}

	contig := contigFromHeader(b)
	bases := initBases(contig, chromosomes)
	fasta = make(map[string][]byte)
	contigs = append(contigs, contig)

	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if b[0] == '>' {
			fasta[contig] = bases
			contig = contigFromHeader(b)
			bases = initBases(contig, chromosomes)
			contigs = append(contigs, contig)
		} else {
			normalize(filename, contig, b)
			bases = append(bases, b...)
		}
	}

	fasta[contig] = bases

	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}

	return fasta, contigs
}

// FromFastaFile reads the sequence of one chromosome from a FASTA
// file. The chromosome is guessed from the file name; if no
// chromosome name occurs in the file name, the file must contain
// exactly one record whose contig name is in the chromosome table.
// The sequence length must equal the chromosome length.
func FromFastaFile(chromosomes []*chrom.Chromosome, filename string) *Sequence {
	fasta, contigs := ParseFasta(filename, chromosomes)
	chromosome := chrom.FromFilename(chromosomes, filename)
	if chromosome == nil {
		if len(contigs) != 1 {
			log.Panicf("cannot determine chromosome for fasta file %v - no chromosome name in the file name, and multiple records in the file", filename)
		}
		if chromosome = chrom.Lookup(chromosomes, contigs[0]); chromosome == nil {
			log.Panicf("cannot determine chromosome for fasta file %v - contig %v is not in the chromosome table", filename, contigs[0])
		}
	}
	bases, ok := fasta[chromosome.Name]
	if !ok {
		if len(contigs) == 1 {
			bases = fasta[contigs[0]]
		} else {
			log.Panicf("fasta file %v contains no record for chromosome %v", filename, chromosome.Name)
		}
	}
	if int64(len(bases)) != chromosome.Length {
		log.Panicf("sequence length %v in fasta file %v does not match length %v of chromosome %v", len(bases), filename, chromosome.Length, chromosome.Name)
	}
	return &Sequence{Chrom: chromosome, Bases: bases}
}

// Write stores the sequence as a 1-D uint8 dataset named after the
// chromosome.
func (s *Sequence) Write(out *h5.File) {
	out.WriteUint8Vector(s.Chrom.Name, s.Bases)
}
