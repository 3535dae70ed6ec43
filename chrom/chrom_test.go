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

package chrom

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(filename, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestParseChromInfo(t *testing.T) {
	filename := writeTempFile(t, "chromInfo.txt",
		"chr1\t248956422\t/gbdb/hg38\n"+
			"chr2\t242193529\n"+
			"\n"+
			"chrX\t156040895\n")
	chromosomes := ParseChromInfo(filename)
	if len(chromosomes) != 3 {
		t.Fatalf("expected 3 chromosomes, got %v", len(chromosomes))
	}
	if chromosomes[0].Name != "chr1" || chromosomes[0].Length != 248956422 {
		t.Errorf("unexpected first chromosome %v", chromosomes[0])
	}
	if chromosomes[2].Name != "chrX" || chromosomes[2].Length != 156040895 {
		t.Errorf("unexpected last chromosome %v", chromosomes[2])
	}
}

func TestParseChromInfoGzip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "chromInfo.txt.gz")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte("chr1\t1000\nchr2\t2000\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	chromosomes := ParseChromInfo(filename)
	if len(chromosomes) != 2 {
		t.Fatalf("expected 2 chromosomes, got %v", len(chromosomes))
	}
	if chromosomes[1].Name != "chr2" || chromosomes[1].Length != 2000 {
		t.Errorf("unexpected chromosome %v", chromosomes[1])
	}
}

func TestLookup(t *testing.T) {
	chromosomes := []*Chromosome{{"chr1", 1000}, {"chr2", 2000}}
	if Lookup(chromosomes, "chr2") != chromosomes[1] {
		t.Error("Lookup chr2 failed")
	}
	if Lookup(chromosomes, "chr3") != nil {
		t.Error("Lookup chr3 should fail")
	}
}

func TestFromFilename(t *testing.T) {
	chromosomes := []*Chromosome{
		{"chr1", 1000},
		{"chr10", 1000},
		{"chr2", 1000},
		{"chrX", 1000},
	}
	for _, test := range []struct {
		filename string
		expected string
	}{
		{"genotypes/chr1.vcf.gz", "chr1"},
		{"genotypes/chr10.vcf.gz", "chr10"},
		{"chr2.hg19.impute2.gz", "chr2"},
		{"1000G.chrX_haps.gz", "chrX"},
		{"chr10_chr1.vcf", "chr10"},
		{"mychr1.vcf", ""},
		{"genotypes.vcf", ""},
	} {
		match := FromFilename(chromosomes, test.filename)
		name := ""
		if match != nil {
			name = match.Name
		}
		if name != test.expected {
			t.Errorf("FromFilename %v: expected %q, got %q", test.filename, test.expected, name)
		}
	}
}
