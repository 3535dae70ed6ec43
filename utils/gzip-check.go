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

package utils

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"log"

	"github.com/biogo/hts/bgzf"
)

// IsGzip determines if the given byte scanner produces a gzip file.
// It uses ReadByte and UnreadByte to check only the initial byte
// from the input.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// isBgzf determines if the given buffered reader produces a BGZF
// file, by looking for the BC extra subfield in the first gzip
// member header. Only peeked bytes are used, so the reader is left
// untouched.
func isBgzf(buf *bufio.Reader) bool {
	header, err := buf.Peek(18)
	if err != nil || len(header) < 18 {
		return false
	}
	if header[0] != 0x1f || header[1] != 0x8b || header[3]&0x04 == 0 {
		return false
	}
	xlen := int(binary.LittleEndian.Uint16(header[10:12]))
	if xlen < 6 {
		return false
	}
	return header[12] == 'B' && header[13] == 'C'
}

// HandleGzip checks if the given reader produces a gzip file by
// looking at the initial bytes. It then returns a bgzf.Reader for
// BGZF input, a gzip.Reader for plain gzip input, or the given
// reader unchanged. HandleGzip uses Peek, ReadByte, and UnreadByte.
func HandleGzip(buf *bufio.Reader) io.Reader {
	if ok, err := IsGzip(buf); err != nil {
		log.Panic(err)
		return nil
	} else if !ok {
		return buf
	}
	if isBgzf(buf) {
		r, err := bgzf.NewReader(buf, 0)
		if err != nil {
			log.Panic(err)
		}
		return r
	}
	r, err := gzip.NewReader(buf)
	if err != nil {
		log.Panic(err)
	}
	return r
}
