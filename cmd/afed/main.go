// Command afed rewrites expressions embedded in a text file in place,
// following the option surface of the original afed.c: an input file
// of "name: expression" lines, optionally followed by "= " and a print
// section that gets replaced by the expression's evaluated value.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/TannerReese/afed"
	"github.com/TannerReese/afed/document"
)

func main() {
	log.SetFlags(0)

	var (
		inPath, outPath, errPath                       string
		onlyCheck, noClobber, noErrors, precisionCheck bool
	)
	flagStr := func(p *string, short, long, usage string) {
		flag.StringVar(p, short, "", usage)
		flag.StringVar(p, long, "", usage)
	}
	flagBool := func(p *bool, short, long, usage string) {
		flag.BoolVar(p, short, false, usage)
		flag.BoolVar(p, long, false, usage)
	}
	flagStr(&inPath, "i", "input", "input file to evaluate ('-' for stdin)")
	flagStr(&outPath, "o", "output", "output file to write the result to ('-' for stdout)")
	flagBool(&onlyCheck, "C", "check", "don't write output, only report errors")
	flagBool(&noClobber, "n", "no-clobber", "refuse to default the output file to the input file")
	flagStr(&errPath, "e", "errors", "file to send error diagnostics to (default stderr, '-' for stdout)")
	flagBool(&noErrors, "E", "no-errors", "suppress error diagnostics entirely")
	flagBool(&precisionCheck, "p", "precision-check", "cross-check sqrt/ln/log/pow against arbitrary-precision results")
	flag.Parse()

	for _, a := range flag.Args() {
		switch {
		case inPath == "":
			inPath = a
		case outPath == "":
			outPath = a
		}
	}
	if inPath == "" {
		log.Fatal("no input file given")
	}
	if outPath == "" && !onlyCheck {
		if noClobber {
			log.Fatal("no output file given and -n/--no-clobber present")
		}
		outPath = inPath
	}

	in, closeIn, err := openInput(inPath)
	if err != nil {
		log.Fatalf("input file %q did not open: %v", inPath, err)
	}
	data, err := io.ReadAll(in)
	closeIn()
	if err != nil {
		log.Fatalf("reading %q: %v", inPath, err)
	}

	var errOut io.Writer = os.Stderr
	if noErrors {
		errOut = nil
	} else if errPath != "" {
		f, closeErrFile, err := openOutput(errPath)
		if err != nil {
			log.Fatalf("error file %q did not open: %v", errPath, err)
		}
		defer closeErrFile()
		errOut = f
	}

	ns := afed.NewNamespace(true)
	doc := document.New(string(data), ns)
	errCount := doc.Parse(errOut)

	var out io.Writer
	if !onlyCheck {
		w, closeOut, err := openOutput(outPath)
		if err != nil {
			log.Fatalf("output file %q did not open: %v", outPath, err)
		}
		defer closeOut()
		out = w
	}
	errCount += doc.Print(out, errOut)

	if precisionCheck {
		checkPrecision(errOut)
	}

	if onlyCheck {
		if errCount > 0 {
			plural := "s"
			if errCount == 1 {
				plural = ""
			}
			fmt.Fprintf(os.Stderr, "%d Parse Error%s\n", errCount, plural)
		} else {
			fmt.Fprintln(os.Stderr, "No Parse Errors")
		}
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
