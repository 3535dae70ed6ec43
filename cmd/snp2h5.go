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

package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/exascience/genoh5/chrom"
	"github.com/exascience/genoh5/h5"
	"github.com/exascience/genoh5/impute"
	"github.com/exascience/genoh5/internal"
	"github.com/exascience/genoh5/sampletab"
	"github.com/exascience/genoh5/snptab"
	"github.com/exascience/genoh5/vcf"
)

// Snp2h5Help is the help string for the snp2h5 tool.
const Snp2h5Help = "snp2h5 parameters:\n" +
	"snp2h5 --chrom chromInfo.txt\n" +
	"       --format vcf|impute\n" +
	"       [--snp_tab snp_tab.h5]\n" +
	"       [--snp_index snp_index.h5]\n" +
	"       [--haplotype haplotype.h5]\n" +
	"       [--geno_prob geno_prob.h5]\n" +
	"       [--samples samples.txt]\n" +
	"       [--log-path path]\n" +
	"       file...\n"

type snp2h5Options struct {
	chromFile, format                     string
	snpTab, snpIndex, haplotype, genoProb string
	samplesFile                           string
	inputs                                []string
	noProgress                            bool
}

// Snp2h5 implements the snp2h5 tool.
func Snp2h5() {
	cfg := internal.LoadConfig()

	var opts snp2h5Options
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&opts.chromFile, "chrom", "", "chromInfo file with chromosome names and lengths")
	flags.StringVar(&opts.format, "format", "", "format of the input files: vcf or impute")
	flags.StringVar(&opts.snpTab, "snp_tab", "", "output HDF5 file for SNP tables")
	flags.StringVar(&opts.snpIndex, "snp_index", "", "output HDF5 file for SNP position indices")
	flags.StringVar(&opts.haplotype, "haplotype", "", "output HDF5 file for haplotypes and phase flags")
	flags.StringVar(&opts.genoProb, "geno_prob", "", "output HDF5 file for genotype probabilities")
	flags.StringVar(&opts.samplesFile, "samples", "", "text file with one sample name per line (impute format)")
	flags.StringVar(&logPath, "log-path", cfg.LogPath, "write log files to the specified directory")
	opts.inputs = parseFlags(flags, Snp2h5Help)
	opts.noProgress = cfg.NoProgress

	sanityChecksFailed := false

	if !checkExist("--chrom", opts.chromFile) {
		sanityChecksFailed = true
	}
	switch opts.format {
	case "vcf", "impute":
	default:
		log.Printf("Error: Invalid input format %v.\n", opts.format)
		sanityChecksFailed = true
	}
	if opts.snpTab == "" && opts.snpIndex == "" && opts.haplotype == "" && opts.genoProb == "" {
		log.Println("Error: No output files requested. Use at least one of --snp_tab, --snp_index, --haplotype, or --geno_prob.")
		sanityChecksFailed = true
	}
	for _, output := range []struct{ parameter, filename string }{
		{"--snp_tab", opts.snpTab},
		{"--snp_index", opts.snpIndex},
		{"--haplotype", opts.haplotype},
		{"--geno_prob", opts.genoProb},
	} {
		if output.filename != "" && !checkCreate(output.parameter, output.filename) {
			sanityChecksFailed = true
		}
	}
	if len(opts.inputs) == 0 {
		log.Println("Error: No input files.")
		sanityChecksFailed = true
	}
	for _, input := range opts.inputs {
		if !checkExist("", input) {
			sanityChecksFailed = true
		}
	}
	switch opts.format {
	case "impute":
		if (opts.haplotype != "" || opts.genoProb != "") && opts.samplesFile == "" {
			log.Println("Error: The impute format requires --samples when --haplotype or --geno_prob output is requested.")
			sanityChecksFailed = true
		}
		if opts.samplesFile != "" && !checkExist("--samples", opts.samplesFile) {
			sanityChecksFailed = true
		}
	case "vcf":
		if opts.samplesFile != "" {
			log.Println("Warning: The --samples flag is ignored for the vcf format. Sample names are taken from the VCF headers.")
			opts.samplesFile = ""
		}
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, Snp2h5Help)
		os.Exit(1)
	}

	setLogOutput(logPath, ProgramMessage("snp2h5"))

	timedRun(true, "", "Converting SNP data to HDF5.", 1, func() { runSnp2h5(opts) })
}

type snpOutputs struct {
	snpTab, snpIndex, haplotype, genoProb *h5.File
}

func (out *snpOutputs) close() {
	for _, file := range []*h5.File{out.snpTab, out.snpIndex, out.haplotype, out.genoProb} {
		if file != nil {
			file.Close()
		}
	}
}

func runSnp2h5(opts snp2h5Options) {
	chromosomes := chrom.ParseChromInfo(opts.chromFile)

	var out snpOutputs
	if opts.snpTab != "" {
		out.snpTab = h5.Create(opts.snpTab)
	}
	if opts.snpIndex != "" {
		out.snpIndex = h5.Create(opts.snpIndex)
	}
	if opts.haplotype != "" {
		out.haplotype = h5.Create(opts.haplotype)
	}
	if opts.genoProb != "" {
		out.genoProb = h5.Create(opts.genoProb)
	}

	if opts.format == "vcf" {
		convertVcfFiles(chromosomes, &out, opts)
	} else {
		convertImputeFiles(chromosomes, &out, opts)
	}

	out.close()
}

func writeSamples(samples sampletab.Table, out *snpOutputs) {
	if out.haplotype != nil {
		samples.Write(out.haplotype)
	}
	if out.genoProb != nil {
		samples.Write(out.genoProb)
	}
}

func convertVcfFiles(chromosomes []*chrom.Chromosome, out *snpOutputs, opts snp2h5Options) {
	var samples sampletab.Table
	samplesWritten := false
	converted := make(map[string]bool)

	bar := startProgress(len(opts.inputs), opts.noProgress)
	for _, input := range opts.inputs {
		hdr, snps := vcf.ReadSnpFile(input, out.haplotype != nil, out.genoProb != nil)

		chromosome := chrom.FromFilename(chromosomes, input)
		if chromosome == nil && len(snps) > 0 {
			chromosome = chrom.Lookup(chromosomes, snps[0].Chrom)
		}
		if chromosome == nil {
			log.Panicf("cannot determine chromosome for input file %v", input)
		}
		if converted[chromosome.Name] {
			log.Panicf("multiple input files for chromosome %v", chromosome.Name)
		}
		converted[chromosome.Name] = true

		if out.haplotype != nil || out.genoProb != nil {
			if len(hdr.Samples) == 0 {
				log.Panicf("VCF file %v contains no samples", input)
			}
			fileSamples := sampletab.FromNames(hdr.Samples)
			if !samplesWritten {
				samples = fileSamples
				writeSamples(samples, out)
				samplesWritten = true
			} else if !samples.Equal(fileSamples) {
				log.Panicf("sample names in VCF file %v do not match the previous input files", input)
			}
		}

		table := snptab.NewTable(chromosome)
		var haps *snptab.Haplotypes
		var probs *snptab.GenoProbs
		if out.haplotype != nil {
			haps = snptab.NewHaplotypes(chromosome, len(hdr.Samples))
		}
		if out.genoProb != nil {
			probs = snptab.NewGenoProbs(chromosome, len(hdr.Samples))
		}
		for _, snp := range snps {
			if snp.Chrom != chromosome.Name {
				log.Panicf("unexpected chromosome %v in input file %v for chromosome %v", snp.Chrom, input, chromosome.Name)
			}
			table.Append(snptab.NewSNP(snp.Name, snp.Pos, snp.Ref, strings.Join(snp.Alt, ",")))
			if haps != nil {
				haps.AppendRow(snp.Alleles, snp.Phase)
			}
			if probs != nil {
				probs.AppendRow(snp.Probs)
			}
		}
		log.Printf("Read %v SNPs for chromosome %v from %v.\n", table.NumSNPs(), chromosome.Name, input)

		writeChromosome(table, haps, probs, out)
		incrementProgress(bar)
	}
	finishProgress(bar)
}

func writeChromosome(table *snptab.Table, haps *snptab.Haplotypes, probs *snptab.GenoProbs, out *snpOutputs) {
	if out.snpTab != nil {
		table.Write(out.snpTab)
	}
	if out.snpIndex != nil {
		table.WriteIndex(out.snpIndex)
	}
	if haps != nil {
		haps.Write(out.haplotype)
	}
	if probs != nil {
		probs.Write(out.genoProb)
	}
}

type imputeInputs struct {
	chromosome *chrom.Chromosome
	geno, haps string
}

func convertImputeFiles(chromosomes []*chrom.Chromosome, out *snpOutputs, opts snp2h5Options) {
	var samples sampletab.Table
	if opts.samplesFile != "" {
		samples = sampletab.FromFile(opts.samplesFile)
		writeSamples(samples, out)
	}

	var order []string
	grouped := make(map[string]*imputeInputs)
	for _, input := range opts.inputs {
		chromosome := chrom.FromFilename(chromosomes, input)
		if chromosome == nil {
			log.Panicf("cannot determine chromosome for input file %v", input)
		}
		group := grouped[chromosome.Name]
		if group == nil {
			group = &imputeInputs{chromosome: chromosome}
			grouped[chromosome.Name] = group
			order = append(order, chromosome.Name)
		}
		if impute.IsHapsFile(input) {
			if group.haps != "" {
				log.Panicf("multiple haplotype input files for chromosome %v", chromosome.Name)
			}
			group.haps = input
		} else {
			if group.geno != "" {
				log.Panicf("multiple genotype input files for chromosome %v", chromosome.Name)
			}
			group.geno = input
		}
	}

	bar := startProgress(len(order), opts.noProgress)
	for _, name := range order {
		group := grouped[name]
		convertImputeChromosome(group, samples, out, opts)
		incrementProgress(bar)
	}
	finishProgress(bar)
}

func checkImputeSamples(filename string, snps []*impute.Snp, samples sampletab.Table) {
	if len(snps) > 0 && samples != nil && snps[0].NSamples() != len(samples) {
		log.Panicf("IMPUTE2 file %v covers %v samples, but the samples file lists %v", filename, snps[0].NSamples(), len(samples))
	}
}

func convertImputeChromosome(group *imputeInputs, samples sampletab.Table, out *snpOutputs, opts snp2h5Options) {
	var genoSnps, hapsSnps []*impute.Snp
	if group.geno != "" {
		genoSnps = impute.ReadSnpFile(group.geno)
		checkImputeSamples(group.geno, genoSnps, samples)
	}
	if group.haps != "" {
		hapsSnps = impute.ReadSnpFile(group.haps)
		checkImputeSamples(group.haps, hapsSnps, samples)
	}
	if genoSnps != nil && hapsSnps != nil {
		if len(genoSnps) != len(hapsSnps) {
			log.Panicf("IMPUTE2 files %v and %v contain different numbers of SNPs", group.geno, group.haps)
		}
		for i, snp := range genoSnps {
			if snp.Pos != hapsSnps[i].Pos {
				log.Panicf("SNP positions in IMPUTE2 files %v and %v do not match at row %v", group.geno, group.haps, i)
			}
		}
	}

	tableSnps := genoSnps
	if tableSnps == nil {
		tableSnps = hapsSnps
	}
	table := snptab.NewTable(group.chromosome)
	for _, snp := range tableSnps {
		table.Append(snptab.NewSNP(snp.Name, snp.Pos, snp.Allele1, snp.Allele2))
	}
	log.Printf("Read %v SNPs for chromosome %v.\n", table.NumSNPs(), group.chromosome.Name)

	var haps *snptab.Haplotypes
	if out.haplotype != nil {
		if hapsSnps == nil {
			log.Panicf("missing IMPUTE2 haplotype input file for chromosome %v", group.chromosome.Name)
		}
		haps = snptab.NewHaplotypes(group.chromosome, len(samples))
		phase := make([]int8, len(samples))
		for i := range phase {
			// IMPUTE2 haplotypes are always phased
			phase[i] = 1
		}
		for _, snp := range hapsSnps {
			haps.AppendRow(snp.Alleles, phase)
		}
	}
	var probs *snptab.GenoProbs
	if out.genoProb != nil {
		if genoSnps == nil {
			log.Panicf("missing IMPUTE2 genotype input file for chromosome %v", group.chromosome.Name)
		}
		probs = snptab.NewGenoProbs(group.chromosome, len(samples))
		for _, snp := range genoSnps {
			probs.AppendRow(snp.Probs)
		}
	}

	writeChromosome(table, haps, probs, out)
}
