// Command lz77 compresses a file (or generated sample data), decompresses
// it again, and reports timing, size, ratio and integrity.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/andybalholm/lz77/internal/driver"
)

func main() {
	cfg := driver.DefaultConfig()
	flag.IntVar(&cfg.Generate, "n", cfg.Generate, "number of bytes to generate when no file is given")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for generated input")
	flag.IntVar(&cfg.MinMatchLength, "min", cfg.MinMatchLength, "minimum match length")
	flag.IntVar(&cfg.TableSize, "table", cfg.TableSize, "lookup table size")
	flag.StringVar(&cfg.Matcher, "matcher", cfg.Matcher, "match finder: scan or chain")
	flag.IntVar(&cfg.SearchLen, "chain-depth", 16, "links followed per position by the chain matcher")
	flag.BoolVar(&cfg.Thorough, "thorough", false, "scan the whole table for the best match")
	flag.BoolVar(&cfg.Compare, "compare", false, "also run the reference codecs")
	flag.BoolVar(&cfg.Dump, "dump", false, "list the tokens of the compressed stream")
	flag.Usage = func() {
		log.Printf("usage: %s [flags] [file]", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() > 0 {
		cfg.Input = flag.Arg(0)
	}

	rep, err := driver.Run(cfg, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if !rep.OK() {
		os.Exit(1)
	}
}
