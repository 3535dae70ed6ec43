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

	"github.com/exascience/genoh5/chrom"
	"github.com/exascience/genoh5/h5"
)

// Sentinels for missing values in the haplotype and genotype
// probability datasets.
const (
	UnknownAllele int8    = -1
	MissingProb   float32 = -1
)

// Haplotypes holds the per-sample allele indices and phase flags of
// one chromosome. The Alleles matrix has one row per SNP and two
// columns per sample; the Phase matrix has one column per sample,
// with 1 for phased and 0 for unphased genotypes.
type Haplotypes struct {
	Chrom    *chrom.Chromosome
	NSamples int
	Alleles  []int8
	Phase    []int8
}

// NewHaplotypes creates an empty haplotype matrix for the given
// chromosome and number of samples.
func NewHaplotypes(chromosome *chrom.Chromosome, nSamples int) *Haplotypes {
	return &Haplotypes{Chrom: chromosome, NSamples: nSamples}
}

// AppendRow adds the haplotype row of one SNP. alleles must hold two
// allele indices per sample, phase one flag per sample.
func (h *Haplotypes) AppendRow(alleles, phase []int8) {
	if len(alleles) != 2*h.NSamples || len(phase) != h.NSamples {
		log.Panicf("inconsistent haplotype row for chromosome %v: %v alleles and %v phase flags for %v samples", h.Chrom.Name, len(alleles), len(phase), h.NSamples)
	}
	h.Alleles = append(h.Alleles, alleles...)
	h.Phase = append(h.Phase, phase...)
}

// NumRows returns the number of SNP rows appended so far.
func (h *Haplotypes) NumRows() int {
	if h.NSamples == 0 {
		return 0
	}
	return len(h.Phase) / h.NSamples
}

// Write stores the alleles as a 2-D int8 dataset named after the
// chromosome, and the phase flags as a 2-D int8 dataset named
// phase_<chromosome>.
func (h *Haplotypes) Write(out *h5.File) {
	rows := h.NumRows()
	out.WriteInt8Matrix(h.Chrom.Name, rows, 2*h.NSamples, h.Alleles)
	out.WriteInt8Matrix("phase_"+h.Chrom.Name, rows, h.NSamples, h.Phase)
}

// GenoProbs holds the genotype probabilities of one chromosome, with
// one row per SNP and three columns per sample: the probabilities of
// the homozygous reference, heterozygous, and homozygous alternative
// genotypes.
type GenoProbs struct {
	Chrom    *chrom.Chromosome
	NSamples int
	Probs    []float32
}

// NewGenoProbs creates an empty genotype probability matrix for the
// given chromosome and number of samples.
func NewGenoProbs(chromosome *chrom.Chromosome, nSamples int) *GenoProbs {
	return &GenoProbs{Chrom: chromosome, NSamples: nSamples}
}

// AppendRow adds the genotype probability row of one SNP. probs must
// hold three values per sample.
func (g *GenoProbs) AppendRow(probs []float32) {
	if len(probs) != 3*g.NSamples {
		log.Panicf("inconsistent genotype probability row for chromosome %v: %v values for %v samples", g.Chrom.Name, len(probs), g.NSamples)
	}
	g.Probs = append(g.Probs, probs...)
}

// NumRows returns the number of SNP rows appended so far.
func (g *GenoProbs) NumRows() int {
	if g.NSamples == 0 {
		return 0
	}
	return len(g.Probs) / (3 * g.NSamples)
}

// Write stores the probabilities as a 2-D float32 dataset named
// after the chromosome.
func (g *GenoProbs) Write(out *h5.File) {
	out.WriteFloat32Matrix(g.Chrom.Name, g.NumRows(), 3*g.NSamples, g.Probs)
}
