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

package vcf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/utils"

	"github.com/exascience/pargo/pipeline"
)

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	switch {
	case err == nil:
		line = line[:len(line)-1]
	case err == io.EOF:
		err = nil
	}
	return
}

// ParseHeader parses a VCF header, up to and including the column
// header line. The sample names are taken from the columns following
// FORMAT.
func ParseHeader(filename string, reader *bufio.Reader) *Header {
	line, err := getLine(reader)
	if err != nil {
		log.Panic(err)
	}
	if !strings.HasPrefix(line, fileFormatVersionLinePrefix) {
		log.Panicf("invalid first line in VCF file %v", filename)
	}
	hdr := &Header{FileFormat: line}
	for {
		line, err = getLine(reader)
		if err != nil {
			log.Panic(err)
		}
		if strings.HasPrefix(line, "##") {
			hdr.Meta = append(hdr.Meta, line[2:])
			continue
		}
		if strings.HasPrefix(line, "#") {
			break
		}
		log.Panicf("unexpected end of header in VCF file %v", filename)
	}
	hdr.Columns = strings.Split(line[1:], "\t")
	if len(hdr.Columns) < len(DefaultHeaderColumns) {
		log.Panicf("missing columns in the header line of VCF file %v", filename)
	}
	for i, column := range DefaultHeaderColumns {
		if hdr.Columns[i] != column {
			log.Panicf("unexpected column %v in the header line of VCF file %v", hdr.Columns[i], filename)
		}
	}
	if len(hdr.Columns) > len(DefaultHeaderColumns) {
		if hdr.Columns[len(DefaultHeaderColumns)] != "FORMAT" {
			log.Panicf("unexpected column %v in the header line of VCF file %v", hdr.Columns[len(DefaultHeaderColumns)], filename)
		}
		hdr.Samples = hdr.Columns[len(DefaultHeaderColumns)+1:]
	}
	return hdr
}

func (sc *StringScanner) missingEntry() bool {
	if (sc.err != nil) || (sc.index >= len(sc.data)) {
		return true
	}
	if sc.data[sc.index] == '.' {
		next := sc.index + 1
		if (next >= len(sc.data)) || (sc.data[next] == '\t') {
			sc.index = next + 1
			return true
		}
	}
	return false
}

func (sc *StringScanner) scanChar(ch byte) {
	if sc.err != nil {
		return
	}
	if (sc.index >= len(sc.data)) || (sc.data[sc.index] != ch) {
		sc.err = errors.New("missing tabulator in VCF data line")
	}
	sc.index++
}

func (sc *StringScanner) doString() string {
	if sc.missingEntry() {
		return "."
	}
	value, ok := sc.readUntilByte('\t')
	if !ok {
		if sc.err == nil {
			sc.err = errors.New("missing tabulator in VCF data line")
		}
		return ""
	}
	return value
}

func (sc *StringScanner) doInt64() int64 {
	if sc.missingEntry() {
		return -1
	}
	value, ok := sc.readUntilByte('\t')
	if !ok {
		if sc.err == nil {
			sc.err = errors.New("missing tabulator in VCF data line")
		}
		return -1
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return i
}

func (sc *StringScanner) doStringList(separator []byte) (result []string) {
	if sc.missingEntry() {
		return nil
	}
	for sc.err == nil {
		result = append(result, sc.readUntilBytes(separator))
		if (sc.index >= len(sc.data)) || (sc.data[sc.index] != separator[0]) {
			break
		}
		sc.index++
	}
	sc.scanChar('\t')
	return result
}

// skipColumn consumes the current column without interpreting it.
func (sc *StringScanner) skipColumn() {
	if sc.err == nil {
		_, _ = sc.readUntilByte('\t')
	}
}

var (
	idSeparator     = []byte{';', '\t'}
	altSeparator    = []byte{',', '\t'}
	formatSeparator = []byte{':', '\t'}
)

func (sc *StringScanner) doFieldList() (result []string) {
	for sc.err == nil {
		result = append(result, sc.readUntilBytes(formatSeparator))
		if (sc.index >= len(sc.data)) || (sc.data[sc.index] != ':') {
			break
		}
		sc.index++
	}
	return result
}

func (sc *StringScanner) parseAllele(s string) int8 {
	if s == "." {
		return -1
	}
	i, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		if sc.err == nil {
			sc.err = fmt.Errorf("invalid allele index %v in a VCF GT field", s)
		}
		return -1
	}
	return int8(i)
}

// parseGenotype parses a GT field into two allele indices and a
// phase flag. Haploid genotypes yield -1 for the second allele and
// count as phased.
func (sc *StringScanner) parseGenotype(field string) (a1, a2, phased int8) {
	for i := 0; i < len(field); i++ {
		if c := field[i]; c == '|' || c == '/' {
			a1 = sc.parseAllele(field[:i])
			a2 = sc.parseAllele(field[i+1:])
			if strings.ContainsAny(field[i+1:], "|/") {
				if sc.err == nil {
					sc.err = fmt.Errorf("more than two alleles in VCF GT field %v", field)
				}
				return -1, -1, 0
			}
			if c == '|' {
				phased = 1
			}
			return a1, a2, phased
		}
	}
	return sc.parseAllele(field), -1, 1
}

// appendGenoProbs parses a GP or GL field and appends three
// genotype probabilities. GL values are log10-scaled likelihoods and
// are converted to probabilities that sum to one. Missing fields
// append -1 three times.
func (sc *StringScanner) appendGenoProbs(probs []float32, field string, log10Scaled bool) []float32 {
	if field == "." || field == "" {
		return append(probs, -1, -1, -1)
	}
	var values [3]float64
	count := 0
	for len(field) > 0 {
		next := strings.IndexByte(field, ',')
		entry := field
		if next < 0 {
			field = ""
		} else {
			entry = field[:next]
			field = field[next+1:]
		}
		if count == 3 {
			if sc.err == nil {
				sc.err = errors.New("expected 3 genotype probabilities in a VCF GP/GL field")
			}
			return append(probs, -1, -1, -1)
		}
		if entry == "." {
			return append(probs, -1, -1, -1)
		}
		value, err := strconv.ParseFloat(entry, 64)
		if err != nil {
			if sc.err == nil {
				sc.err = err
			}
			return append(probs, -1, -1, -1)
		}
		values[count] = value
		count++
	}
	if count != 3 {
		if sc.err == nil {
			sc.err = errors.New("expected 3 genotype probabilities in a VCF GP/GL field")
		}
		return append(probs, -1, -1, -1)
	}
	if log10Scaled {
		sum := 0.0
		for i, value := range values {
			values[i] = math.Pow(10, value)
			sum += values[i]
		}
		if sum > 0 {
			for i := range values {
				values[i] /= sum
			}
		}
	}
	return append(probs, float32(values[0]), float32(values[1]), float32(values[2]))
}

// ParseSnp parses one VCF data line.
func (sc *StringScanner) ParseSnp(sp *SnpParser) *Snp {
	var snp Snp
	snp.Chrom = sc.doString()
	snp.Pos = sc.doInt64()
	if ids := sc.doStringList(idSeparator); len(ids) > 0 {
		snp.Name = ids[0]
	} else {
		snp.Name = "."
	}
	snp.Ref = sc.doString()
	snp.Alt = sc.doStringList(altSeparator)
	sc.skipColumn() // QUAL
	sc.skipColumn() // FILTER
	sc.skipColumn() // INFO
	if (sp.NSamples > 0) && (sp.WithGenotypes || sp.WithProbs) {
		format := sc.doFieldList()
		gt, gp, gl := -1, -1, -1
		for i, field := range format {
			switch field {
			case "GT":
				gt = i
			case "GP":
				gp = i
			case "GL":
				gl = i
			}
		}
		if sp.WithGenotypes && gt < 0 {
			sc.err = errors.New("missing GT entry in the FORMAT column of a VCF data line")
			return nil
		}
		if sp.WithProbs && gp < 0 && gl < 0 {
			sc.err = errors.New("missing GP/GL entry in the FORMAT column of a VCF data line")
			return nil
		}
		if sp.WithGenotypes {
			snp.Alleles = make([]int8, 0, 2*sp.NSamples)
			snp.Phase = make([]int8, 0, sp.NSamples)
		}
		if sp.WithProbs {
			snp.Probs = make([]float32, 0, 3*sp.NSamples)
		}
		values := make([]string, 0, len(format))
		for i := 0; i < sp.NSamples; i++ {
			sc.scanChar('\t')
			values = values[:0]
			for sc.err == nil {
				values = append(values, sc.readUntilBytes(formatSeparator))
				if (sc.index >= len(sc.data)) || (sc.data[sc.index] != ':') {
					break
				}
				sc.index++
			}
			if sp.WithGenotypes {
				a1, a2, phased := int8(-1), int8(-1), int8(0)
				if gt < len(values) {
					a1, a2, phased = sc.parseGenotype(values[gt])
				}
				snp.Alleles = append(snp.Alleles, a1, a2)
				snp.Phase = append(snp.Phase, phased)
			}
			if sp.WithProbs {
				switch {
				case gp >= 0 && gp < len(values):
					snp.Probs = sc.appendGenoProbs(snp.Probs, values[gp], false)
				case gl >= 0 && gl < len(values):
					snp.Probs = sc.appendGenoProbs(snp.Probs, values[gl], true)
				default:
					snp.Probs = append(snp.Probs, -1, -1, -1)
				}
			}
		}
	}
	if sc.err != nil {
		return nil
	}
	return &snp
}

// ReadSnpFile reads all SNPs from a VCF file, parsing the data lines
// in parallel. The file may be plain text, gzip, or BGZF compressed.
// Genotypes and genotype probabilities are only extracted when
// requested.
func ReadSnpFile(filename string, withGenotypes, withProbs bool) (hdr *Header, snps []*Snp) {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	reader := bufio.NewReader(utils.HandleGzip(bufio.NewReader(f)))
	hdr = ParseHeader(filename, reader)
	sp := &SnpParser{
		NSamples:      len(hdr.Samples),
		WithGenotypes: withGenotypes,
		WithProbs:     withProbs,
	}

	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		result := make([]*Snp, 0, len(lines))
		var sc StringScanner
		for _, line := range lines {
			if len(line) == 0 {
				continue
			}
			sc.Reset(line)
			snp := sc.ParseSnp(sp)
			if err := sc.Err(); err != nil {
				p.SetErr(fmt.Errorf("%v, while parsing VCF line %v in %v", err, line, filename))
				return result
			}
			result = append(result, snp)
		}
		return result
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		snps = append(snps, data.([]*Snp)...)
		return data
	})))
	internal.RunPipeline(&p)
	return hdr, snps
}
