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

package nuc

import "testing"

func TestToUpperAndN(t *testing.T) {
	for _, test := range []struct {
		base     byte
		expected byte
	}{
		{'A', A}, {'a', A},
		{'c', C}, {'g', G}, {'t', T},
		{'N', N}, {'n', N},
		{'R', N}, {'y', N}, {'W', N}, {'v', N},
	} {
		if result := ToUpperAndN(test.base); result != test.expected {
			t.Errorf("ToUpperAndN %q: expected %q, got %q", test.base, test.expected, result)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, base := range []byte("ACGTNacgtnRYMKWSBDHVrymkwsbdhv") {
		if !IsValid(base) {
			t.Errorf("expected %q to be valid", base)
		}
	}
	for _, base := range []byte("XxZz0- >") {
		if IsValid(base) {
			t.Errorf("expected %q to be invalid", base)
		}
	}
}
