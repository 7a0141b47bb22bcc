package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	txt2html "github.com/alnah/go-txt2html"
	"golang.org/x/text/encoding/charmap"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no readable input")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrOutDirNeeded = errors.New("batch mode with stdin input requires --outdir")
)

// run parses arguments, builds options, and performs the conversion.
func run(args []string, stderr io.Writer) error {
	flags, fs, inputs, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.common.version {
		fmt.Fprintf(os.Stdout, "txt2html %s\n", Version)
		return nil
	}

	opts := txt2html.DefaultOptions()
	if flags.common.config != "" {
		cfg, err := LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
		cfg.applyTo(&opts)
	}
	applyFlags(&opts, flags, fs)

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	if flags.batch.batch {
		return runBatch(flags, opts, inputs, stderr)
	}

	conv, err := txt2html.NewConverter(
		txt2html.WithOptions(opts),
		txt2html.WithDiagWriter(stderr),
	)
	if err != nil {
		return err
	}

	readers, closers := openInputs(inputs, flags.output.latin1, stderr)
	defer closers()
	if len(readers) == 0 {
		// Every input failed to open: an empty body is still a document.
		readers = []io.Reader{strings.NewReader("")}
	}

	out, closeOut, err := openOutput(flags.output.outfile)
	if err != nil {
		return err
	}
	defer closeOut()

	return conv.ConvertDocument(readers, out)
}

// applyFlags layers explicitly set command-line flags over the options.
func applyFlags(o *txt2html.Options, f *cliFlags, fs changedChecker) {
	if fs.Changed("extract") {
		o.Extract = f.output.extract
	}
	if fs.Changed("xhtml") {
		o.XHTML = f.output.xhtml
	}
	if fs.Changed("lower-case-tags") {
		o.LowerCaseTags = f.output.lowerCaseTags
	}
	if fs.Changed("eight-bit-clean") {
		o.EightBitClean = f.output.eightBitClean
	}

	if fs.Changed("title") {
		o.Title = f.envelope.title
	}
	if fs.Changed("titlefirst") {
		o.TitleFirst = f.envelope.titleFirst
	}
	if fs.Changed("doctype") {
		o.Doctype = f.envelope.doctype
	}
	if fs.Changed("style-url") {
		o.StyleURL = f.envelope.styleURL
	}
	if fs.Changed("body-deco") {
		o.BodyDeco = f.envelope.bodyDeco
	}
	if fs.Changed("append-file") {
		o.AppendFile = f.envelope.appendFile
	}
	if fs.Changed("append-head") {
		o.AppendHead = f.envelope.appendHead
	}
	if fs.Changed("prepend-file") {
		o.PrependFile = f.envelope.prependFile
	}

	if fs.Changed("mail") {
		o.MailMode = f.structure.mailMode
	}
	if fs.Changed("tables") {
		o.MakeTables = f.structure.makeTables
	}
	if fs.Changed("no-anchors") {
		o.MakeAnchors = !f.structure.noAnchors
	}
	if fs.Changed("explicit-headings") {
		o.ExplicitHeadings = f.structure.explicitHeadings
	}
	if fs.Changed("mosaic-headers") {
		o.UseMosaicHeader = f.structure.mosaicHeaders
	}
	if fs.Changed("heading-regexp") {
		o.CustomHeadingRegexp = f.structure.headingRegexps
	}
	if fs.Changed("link-only") {
		o.LinkOnly = f.structure.linkOnly
	}
	if fs.Changed("short-line") {
		o.ShortLineLength = f.structure.shortLineLength
	}
	if fs.Changed("par-indent") {
		o.ParIndent = f.structure.parIndent
	}
	if fs.Changed("indent-width") {
		o.IndentWidth = f.structure.indentWidth
	}
	if fs.Changed("indent-par-break") {
		o.IndentParBreak = f.structure.indentParBreak
	}
	if fs.Changed("preserve-indent") {
		o.PreserveIndent = f.structure.preserveIndent
	}
	if fs.Changed("hrule-min") {
		o.HruleMin = f.structure.hruleMin
	}
	if fs.Changed("min-caps") {
		o.MinCapsLength = f.structure.minCapsLength
	}
	if fs.Changed("caps-tag") {
		o.CapsTag = f.structure.capsTag
	}
	if fs.Changed("no-unhyphenation") {
		o.Unhyphenation = !f.structure.noUnhyphenation
	}

	if fs.Changed("pre-trigger") {
		o.PreformatTriggerLines = f.preformat.triggerLines
	}
	if fs.Changed("endpre-trigger") {
		o.EndpreformatTriggerLines = f.preformat.endTriggerLines
	}
	if fs.Changed("pre-whitespace-min") {
		o.PreformatWhitespaceMin = f.preformat.whitespaceMin
	}
	if fs.Changed("pre-marker") {
		o.UsePreformatMarker = f.preformat.useMarker
	}
	if fs.Changed("pre-start-marker") {
		o.PreformatStartMarker = f.preformat.startMarker
	}
	if fs.Changed("pre-end-marker") {
		o.PreformatEndMarker = f.preformat.endMarker
	}

	if fs.Changed("no-links") {
		o.MakeLinks = !f.links.noLinks
	}
	if fs.Changed("dict") {
		o.LinksDictionaries = f.links.dicts
	}
	if fs.Changed("system-dict") {
		o.SystemLinkDict = f.links.systemDict
	}
	if fs.Changed("default-dict") {
		o.DefaultLinkDict = f.links.defaultDict
	}
	if fs.Changed("dict-debug") {
		o.DictDebug = f.links.dictDebug
	}
}

// changedChecker is the slice of pflag.FlagSet that applyFlags needs.
type changedChecker interface {
	Changed(name string) bool
}

// openInputs opens each input path, reporting and skipping unreadable
// ones. "-" reads stdin. With latin1 set, readers are decoded from
// ISO 8859-1.
func openInputs(paths []string, latin1 bool, stderr io.Writer) ([]io.Reader, func()) {
	var readers []io.Reader
	var files []*os.File
	for _, path := range paths {
		if path == "-" {
			readers = append(readers, decodeReader(os.Stdin, latin1))
			continue
		}
		f, err := os.Open(path) // #nosec G304 -- input path is user-provided
		if err != nil {
			fmt.Fprintf(stderr, "txt2html: %v: %v\n", txt2html.ErrInputNotReadable, err)
			continue
		}
		files = append(files, f)
		readers = append(readers, decodeReader(f, latin1))
	}
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	return readers, closeAll
}

// decodeReader wraps r with an ISO 8859-1 decoder when requested.
func decodeReader(r io.Reader, latin1 bool) io.Reader {
	if !latin1 {
		return r
	}
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}

// openOutput opens the output destination; "-" writes stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path) // #nosec G304 -- output path is user-provided
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// runBatch converts each input file to its own .html output in parallel.
func runBatch(flags *cliFlags, opts txt2html.Options, inputs []string, stderr io.Writer) error {
	for _, path := range inputs {
		if path == "-" && flags.batch.outDir == "" {
			return ErrOutDirNeeded
		}
	}

	poolSize := txt2html.ResolvePoolSize(flags.batch.workers)
	if flags.common.verbose {
		fmt.Fprintf(stderr, "Pool size: %d\n", poolSize)
	}
	pool := txt2html.NewConverterPool(poolSize,
		txt2html.WithOptions(opts),
		txt2html.WithDiagWriter(stderr),
	)
	defer pool.Close()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, poolSize)

	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, path := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			conv, err := pool.Acquire()
			if err != nil {
				record(err)
				return
			}
			defer pool.Release(conv)

			if err := convertOne(conv, path, flags, stderr); err != nil {
				record(err)
			}
		}(path)
	}
	wg.Wait()
	return firstErr
}

// convertOne converts a single file for batch mode.
func convertOne(conv *txt2html.Converter, path string, flags *cliFlags, stderr io.Writer) error {
	var in io.Reader
	if path == "-" {
		in = decodeReader(os.Stdin, flags.output.latin1)
	} else {
		f, err := os.Open(path) // #nosec G304 -- input path is user-provided
		if err != nil {
			fmt.Fprintf(stderr, "txt2html: %v: %v\n", txt2html.ErrInputNotReadable, err)
			return nil
		}
		defer f.Close()
		in = decodeReader(f, flags.output.latin1)
	}

	outPath := batchOutputPath(path, flags.batch.outDir)
	out, err := os.Create(outPath) // #nosec G304 -- output path derives from user input
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer out.Close()

	if flags.common.verbose {
		fmt.Fprintf(stderr, "%s -> %s\n", path, outPath)
	}
	return conv.ConvertDocument([]io.Reader{in}, out)
}

// batchOutputPath derives the .html output path for one input.
func batchOutputPath(input, outDir string) string {
	base := filepath.Base(input)
	if base == "-" {
		base = "stdin"
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base += ".html"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}
