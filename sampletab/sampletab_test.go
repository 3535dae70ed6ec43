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

package sampletab

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromNames(t *testing.T) {
	names := []string{"NA00001", "NA00002", strings.Repeat("x", MaxNameLength+5)}
	table := FromNames(names)
	result := table.Names()
	if len(result) != 3 || result[0] != "NA00001" || result[1] != "NA00002" {
		t.Errorf("unexpected names %v", result)
	}
	if result[2] != names[2][:MaxNameLength] {
		t.Errorf("unexpected truncated name %v", result[2])
	}
}

func TestFromFile(t *testing.T) {
	contents := "NA00001 female pop1\n\nNA00002\tmale\tpop2\nNA00003\n"
	filename := filepath.Join(t.TempDir(), "samples.txt")
	if err := ioutil.WriteFile(filename, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	table := FromFile(filename)
	names := table.Names()
	if len(names) != 3 || names[0] != "NA00001" || names[1] != "NA00002" || names[2] != "NA00003" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestEqual(t *testing.T) {
	a := FromNames([]string{"NA00001", "NA00002"})
	b := FromNames([]string{"NA00001", "NA00002"})
	c := FromNames([]string{"NA00002", "NA00001"})
	if !a.Equal(b) {
		t.Error("expected equal tables")
	}
	if a.Equal(c) {
		t.Error("expected unequal tables for reordered samples")
	}
	if a.Equal(b[:1]) {
		t.Error("expected unequal tables for different lengths")
	}
}
