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

package impute

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestIsHapsFile(t *testing.T) {
	for _, test := range []struct {
		filename string
		expected bool
	}{
		{"chr22.hg19.impute2_haps.gz", true},
		{"genotypes/chr22_haps", true},
		{"chr22.hg19.impute2.gz", false},
		{"chr22_haps/genotypes.impute2", false},
	} {
		if IsHapsFile(test.filename) != test.expected {
			t.Errorf("IsHapsFile %v: expected %v", test.filename, test.expected)
		}
	}
}

func TestParseGenoSnp(t *testing.T) {
	snp, err := parseSnp("--- rs123 16050408 T C 0.97 0.03 0 0 1 0", false)
	if err != nil {
		t.Fatal(err)
	}
	if snp.Name != "rs123" || snp.Pos != 16050408 || snp.Allele1 != "T" || snp.Allele2 != "C" {
		t.Errorf("unexpected SNP %v", snp)
	}
	expected := []float32{0.97, 0.03, 0, 0, 1, 0}
	if len(snp.Probs) != len(expected) {
		t.Fatalf("unexpected probs %v", snp.Probs)
	}
	for i := range expected {
		if snp.Probs[i] != expected[i] {
			t.Errorf("unexpected probs %v", snp.Probs)
			break
		}
	}
	if snp.NSamples() != 2 {
		t.Errorf("expected 2 samples, got %v", snp.NSamples())
	}
}

func TestParseHapsSnp(t *testing.T) {
	snp, err := parseSnp("--- rs123 16050408 T C 0 1 1 -", true)
	if err != nil {
		t.Fatal(err)
	}
	expected := []int8{0, 1, 1, -1}
	if len(snp.Alleles) != len(expected) {
		t.Fatalf("unexpected alleles %v", snp.Alleles)
	}
	for i := range expected {
		if snp.Alleles[i] != expected[i] {
			t.Errorf("unexpected alleles %v", snp.Alleles)
			break
		}
	}
	if snp.NSamples() != 2 {
		t.Errorf("expected 2 samples, got %v", snp.NSamples())
	}
}

func TestParseSnpErrors(t *testing.T) {
	if _, err := parseSnp("--- rs123 16050408 T", false); err == nil {
		t.Error("expected an error for too few columns")
	}
	if _, err := parseSnp("--- rs123 16050408 T C 0.97 0.03", false); err == nil {
		t.Error("expected an error for a partial probability triple")
	}
	if _, err := parseSnp("--- rs123 16050408 T C 0 1 1", true); err == nil {
		t.Error("expected an error for an odd number of alleles")
	}
	if _, err := parseSnp("--- rs123 16050408 T C 0 x", true); err == nil {
		t.Error("expected an error for an invalid allele")
	}
	if _, err := parseSnp("--- rs123 xyz T C 0 1", true); err == nil {
		t.Error("expected an error for a non-numeric position")
	}
}

func TestReadSnpFile(t *testing.T) {
	contents := "--- rs1 100 A G 1 0 0 0 1 0\n" +
		"--- rs2 200 C T 0 0 1 0.5 0.5 0\n"
	filename := filepath.Join(t.TempDir(), "chr1.impute2")
	if err := ioutil.WriteFile(filename, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	snps := ReadSnpFile(filename)
	if len(snps) != 2 {
		t.Fatalf("expected 2 SNPs, got %v", len(snps))
	}
	if snps[0].Name != "rs1" || snps[1].Name != "rs2" {
		t.Errorf("SNPs out of order: %v, %v", snps[0].Name, snps[1].Name)
	}
	if snps[1].Probs[3] != 0.5 {
		t.Errorf("unexpected probs %v", snps[1].Probs)
	}
}
