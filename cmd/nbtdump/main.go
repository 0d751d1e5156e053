// Package main provides a command-line utility to inspect raw NBT files.
// It parses a document zero-copy (memory-mapping the file where the
// platform allows) and prints the tree as SNBT-flavoured text.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"

	"github.com/scigolib/nbt"
)

func main() {
	flagset := flag.NewFlagSet("nbtdump", flag.ExitOnError)
	var (
		flLE       = flagset.Bool("le", false, "parse as little-endian NBT (Bedrock worlds)")
		flStrict   = flagset.Bool("strict", false, "reject trailing bytes after the root compound")
		flMaxDepth = flagset.Int("max-depth", 0, "override the nesting cap (default 512)")
		flStats    = flagset.Bool("stats", false, "print per-tag node counts instead of the tree")
		flDebug    = flagset.Bool("debug", false, "enable debug logging")
	)

	if err := ff.Parse(flagset, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		fmt.Fprintf(os.Stderr, "parsing flags: %v\n", err)
		os.Exit(1)
	}

	slogLevel := slog.LevelInfo
	if *flDebug {
		slogLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))

	args := flagset.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: nbtdump [flags] <file.nbt>")
		flagset.PrintDefaults()
		os.Exit(2)
	}

	data, cleanup, err := mapFile(args[0])
	if err != nil {
		logger.Error("open failed", "path", args[0], "err", err)
		os.Exit(1)
	}
	defer cleanup()

	logger.Debug("input mapped", "path", args[0], "bytes", len(data))

	opts := nbt.ParseOptions{StrictTrailing: *flStrict, MaxDepth: *flMaxDepth}

	if *flLE {
		run[nbt.LittleEndian](logger, data, opts, *flStats)
	} else {
		run[nbt.BigEndian](logger, data, opts, *flStats)
	}
}

func run[E nbt.Order](logger *slog.Logger, data []byte, opts nbt.ParseOptions, stats bool) {
	doc, err := nbt.ReadBorrowedOptions[E](data, opts)
	if err != nil {
		logger.Error("parse failed", "err", err)
		os.Exit(1)
	}

	if rest := doc.Trailing(); len(rest) > 0 {
		logger.Debug("trailing bytes after root compound", "bytes", len(rest))
	}

	if stats {
		printStats[E](doc)
		return
	}

	fmt.Println(doc.String())
}

func printStats[E nbt.Order](doc *nbt.Document[E]) {
	counts := map[nbt.TagID]int{}
	countNodes[E](doc.Root(), counts)

	for tag := nbt.TagByte; tag <= nbt.TagLongArray; tag++ {
		if n := counts[tag]; n > 0 {
			fmt.Printf("%-16s %d\n", tag, n)
		}
	}
}

func countNodes[E nbt.Order](v nbt.Value[E], counts map[nbt.TagID]int) {
	counts[v.Kind()]++

	if c, ok := v.AsCompound(); ok {
		for i := 0; i < c.Len(); i++ {
			countNodes[E](c.At(i), counts)
		}
	}
	if l, ok := v.AsList(); ok {
		for i := 0; i < l.Len(); i++ {
			countNodes[E](l.At(i), counts)
		}
	}
}
