package main

import (
	"flag"
	"fmt"
	"os"

	"exodash/internal/testkit"
)

func main() {
	out := flag.String("out", "PS_synthetic.csv", "output file path")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	preamble := flag.Int("preamble", 96, "comment lines before the header row")
	controversial := flag.Int("controversial-every", 7, "mark every n-th complete row controversial (0 disables)")
	flag.Parse()

	if *preamble < 0 {
		fmt.Fprintln(os.Stderr, "preamble must be >= 0")
		os.Exit(2)
	}

	cfg := testkit.DefaultArchiveConfig()
	cfg.Seed = *seed
	cfg.PreambleLines = *preamble
	cfg.ControversialEvery = *controversial

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating output:", err)
		os.Exit(1)
	}
	if err := testkit.NewArchiveGenerator(cfg).Write(f); err != nil {
		f.Close()
		fmt.Fprintln(os.Stderr, "error writing archive:", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "error closing output:", err)
		os.Exit(1)
	}

	retained, methods := cfg.ExpectedRetained(20)
	fmt.Printf("Wrote %s: %d rows, %d expected after cleaning (%v)\n", *out, cfg.TotalRows(), retained, methods)
}
