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

package seq

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/exascience/genoh5/chrom"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(filename, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestContigFromHeader(t *testing.T) {
	for _, test := range []struct {
		header   string
		expected string
	}{
		{">chr1", "chr1"},
		{"> chr1", "chr1"},
		{">chr1 Homo sapiens chromosome 1", "chr1"},
		{">chr1\tAC:1234", "chr1"},
	} {
		if contig := contigFromHeader([]byte(test.header)); contig != test.expected {
			t.Errorf("contigFromHeader %q: expected %q, got %q", test.header, test.expected, contig)
		}
	}
}

func TestParseFasta(t *testing.T) {
	filename := writeTempFile(t, "test.fa",
		">chr1 test sequence\n"+
			"acgt\n"+
			"ACGT\n"+
			"\n"+
			">chr2\n"+
			"acgryn\n")
	chromosomes := []*chrom.Chromosome{{Name: "chr1", Length: 8}, {Name: "chr2", Length: 6}}
	fasta, contigs := ParseFasta(filename, chromosomes)
	if len(contigs) != 2 || contigs[0] != "chr1" || contigs[1] != "chr2" {
		t.Fatalf("unexpected contigs %v", contigs)
	}
	if string(fasta["chr1"]) != "ACGTACGT" {
		t.Errorf("unexpected chr1 sequence %q", fasta["chr1"])
	}
	if string(fasta["chr2"]) != "ACGNNN" {
		t.Errorf("unexpected chr2 sequence %q", fasta["chr2"])
	}
}

func TestFromFastaFile(t *testing.T) {
	chromosomes := []*chrom.Chromosome{{Name: "chr1", Length: 8}, {Name: "chr2", Length: 6}}
	filename := writeTempFile(t, "chr2.fa", ">chr2\nacgryn\n")
	sequence := FromFastaFile(chromosomes, filename)
	if sequence.Chrom.Name != "chr2" {
		t.Errorf("unexpected chromosome %v", sequence.Chrom.Name)
	}
	if string(sequence.Bases) != "ACGNNN" {
		t.Errorf("unexpected sequence %q", sequence.Bases)
	}
}

func TestFromFastaFileSingleRecord(t *testing.T) {
	// No chromosome name in the file name; fall back to the contig
	// of the only record.
	chromosomes := []*chrom.Chromosome{{Name: "chr1", Length: 8}}
	filename := writeTempFile(t, "genome.fa", ">chr1\nACGTACGT\n")
	sequence := FromFastaFile(chromosomes, filename)
	if sequence.Chrom.Name != "chr1" {
		t.Errorf("unexpected chromosome %v", sequence.Chrom.Name)
	}
	if string(sequence.Bases) != "ACGTACGT" {
		t.Errorf("unexpected sequence %q", sequence.Bases)
	}
}

func TestFromFastaFileGzip(t *testing.T) {
	chromosomes := []*chrom.Chromosome{{Name: "chr1", Length: 8}}
	filename := filepath.Join(t.TempDir(), "chr1.fa.gz")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte(">chr1\nacgtACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	sequence := FromFastaFile(chromosomes, filename)
	if string(sequence.Bases) != "ACGTACGT" {
		t.Errorf("unexpected sequence %q", sequence.Bases)
	}
}
