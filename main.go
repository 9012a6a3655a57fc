// main.go

/*
TLCS-900/TMP94C241 Assembler

A dedicated assembler for the TLCS-900/H CPU family, compatible with
ASL (Alfred's Macro Assembler) syntax, producing a raw binary image.

(c) 2024 - 2026 Zayn Otley
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: input.rom)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "TLCS-900/TMP94C241 Assembler\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tlcs900asm [options] input.asm\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tlcs900asm firmware.asm\n")
		fmt.Fprintf(os.Stderr, "  tlcs900asm -o firmware.rom -v firmware.asm\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputFile := flag.Arg(0)

	output := *outFile
	if output == "" {
		output = defaultOutputName(inputFile)
	}

	asm := NewAssembler()
	asm.verbose = *verbose

	if !asm.AssembleFile(inputFile) {
		fmt.Fprintf(os.Stderr, "Assembly failed with %d errors\n", asm.ErrorCount())
		// Partial output may still be useful for debugging and
		// byte-for-byte comparison against a reference ROM.
		if len(asm.output) > 0 {
			fmt.Fprintf(os.Stderr, "Partial output: %d bytes generated (with errors)\n", len(asm.output))
			asm.WriteOutput(output)
		}
		os.Exit(1)
	}

	if err := asm.WriteOutput(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Assembly successful: %s -> %s\n", inputFile, output)
	}
}

// defaultOutputName replaces the input extension with .rom.
func defaultOutputName(input string) string {
	if dot := strings.LastIndex(input, "."); dot > strings.LastIndexByte(input, '/') {
		return input[:dot] + ".rom"
	}
	return input + ".rom"
}
