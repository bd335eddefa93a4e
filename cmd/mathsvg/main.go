package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tdewolff/argp"

	"github.com/mathsvg/mathsvg"
)

type Options struct {
	Latex     bool    `desc:"Input is LaTeX math"`
	Mathml    bool    `desc:"Input is MathML (default)"`
	Output    string  `short:"o" desc:"Output file, - or empty for stdout"`
	Font      string  `short:"f" desc:"Math font file, must contain a MATH table"`
	Size      float64 `short:"s" default:"24" desc:"Base font size in pixels"`
	Precision int     `short:"p" default:"6" desc:"Decimal precision of SVG coordinates"`
	Svg1      bool    `name:"svg1" desc:"Write SVG 1.1 with inlined glyph paths"`
	Inline    bool    `desc:"Typeset in inline style"`
	Input     string  `index:"0" desc:"Input file, - or empty for stdin"`
}

const (
	exitParseError = 1
	exitIOError    = 2
	exitFontError  = 3
)

func main() {
	opts := Options{}
	root := argp.New("Render MathML or LaTeX math to SVG")
	root.AddStruct(&opts)
	root.Parse()

	os.Exit(run(&opts))
}

func run(opts *Options) int {
	var src io.Reader = os.Stdin
	if opts.Input != "" && opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
		defer f.Close()
		src = f
	}
	input, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}

	mathsvg.Precision = opts.Precision
	mathsvg.SVG2 = !opts.Svg1

	mopts := []mathsvg.Option{mathsvg.Size(opts.Size)}
	if opts.Font != "" {
		mopts = append(mopts, mathsvg.WithFont(opts.Font))
	}
	if opts.Inline {
		mopts = append(mopts, mathsvg.Inline())
	}

	var m *mathsvg.Math
	if opts.Latex {
		m, err = mathsvg.ParseLaTeX(string(input), mopts...)
	} else {
		m, err = mathsvg.Parse(string(input), mopts...)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, mathsvg.ErrFont) {
			return exitFontError
		}
		return exitParseError
	}
	for _, warning := range m.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}

	var dst io.Writer = os.Stdout
	if opts.Output != "" && opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
		defer f.Close()
		dst = f
	}
	if err := m.WriteSVG(dst); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	fmt.Fprintln(dst)
	return 0
}
