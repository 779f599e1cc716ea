// Public suffix list converter takes a suffix list file in plaintext or gob format,
// and converts it to a deduplicated, sorted list file in plaintext or gob format.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/database64128/urlparse-go/mmap"
	"github.com/database64128/urlparse-go/psl"
)

var (
	inText  = flag.String("inText", "", "Path to input suffix list file in plaintext format.")
	inGob   = flag.String("inGob", "", "Path to input suffix list file in gob format.")
	outText = flag.String("outText", "", "Path to output suffix list file in plaintext format.")
	outGob  = flag.String("outGob", "", "Path to output suffix list file in gob format.")
	icann   = flag.Bool("icann", false, "Keep only the ICANN section. Only applicable to plaintext format.")
)

func main() {
	flag.Parse()

	var (
		inCount int
		inPath  string
		inFunc  func(string) (*psl.Set, error)
	)

	if *inText != "" {
		inCount++
		inPath = *inText
		inFunc = func(s string) (*psl.Set, error) {
			return psl.FromText(s, psl.ParseOptions{ICANNOnly: *icann})
		}
	}

	if *inGob != "" {
		inCount++
		inPath = *inGob
		inFunc = func(s string) (*psl.Set, error) {
			return psl.FromGob(strings.NewReader(s))
		}
	}

	if inCount != 1 {
		fmt.Fprintln(os.Stderr, "Exactly one of -inText, -inGob must be specified.")
		flag.Usage()
		os.Exit(1)
	}

	if *outText == "" && *outGob == "" {
		fmt.Fprintln(os.Stderr, "Specify output file paths with -outText and/or -outGob.")
		flag.Usage()
		os.Exit(1)
	}

	data, err := mmap.ReadFile[string](inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read input file:", err)
		os.Exit(1)
	}
	set, err := inFunc(data)
	mmap.Unmap(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to parse input file:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d suffixes, fingerprint %s\n", set.Len(), set.FingerprintString())

	if *outText != "" {
		if err = writeFile(*outText, set.WriteText); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write output file:", err)
			os.Exit(1)
		}
	}

	if *outGob != "" {
		if err = writeFile(*outGob, set.WriteGob); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write output file:", err)
			os.Exit(1)
		}
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	fout, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(fout); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}
