// 16 Oct 2026

/*
Msakit works on collections of multiple sequence alignments, the kind
one has after aligning each locus of a phylogenomic data set.

It reads FASTA, NEXUS and PHYLIP (sequential or interleaved) and
writes any of them. Files ending in .gz are read and written
compressed.

Usage:

	msakit command [flags]

The commands are:

	concat
		Join per-locus alignments into one matrix. Taxa missing from a
		locus are padded with '?'. Each locus becomes a partition,
		written as NEXUS charsets, a NEXUS sets file or a RAxML file.
	convert
		Rewrite alignments in another format, optionally sorting taxa.
	filter
		Keep alignments with enough taxa, a length in some range,
		enough (or few enough) parsimony informative sites, little
		missing data, or a given set of taxa. The survivors are copied
		or concatenated.
	seqlen
		Write a CSV table with the length of every sequence, with and
		without gaps.
	split
		Cut an alignment into one file per partition.

Flags shared by every command:

	-d, --dir dir
		read every alignment in dir
	-i, --input file
		read file. May be repeated.
	-f, --input-format fmt
		auto (from the extension), fasta, nexus or phylip
	--datatype type
		dna, aa or ignore (no symbol checking)
	-F, --output-format fmt
		fasta, nexus, phylip, or any of them with -int for interleaved
	-t, --threads n
		number of files handled at once
	--force
		overwrite existing output
	--progress
		draw a progress bar
	-v, --verbose
		say what is happening

Output files that already exist are never overwritten without --force.
*/
package main
