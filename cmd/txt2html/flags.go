package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that affect the run rather than the conversion.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// outputFlags holds output destination and shape flags.
type outputFlags struct {
	outfile       string
	extract       bool
	xhtml         bool
	lowerCaseTags bool
	eightBitClean bool
	latin1        bool
}

// envelopeFlags holds document envelope flags.
type envelopeFlags struct {
	title       string
	titleFirst  bool
	doctype     string
	styleURL    string
	bodyDeco    string
	appendFile  string
	appendHead  string
	prependFile string
}

// structureFlags holds structural analysis flags.
type structureFlags struct {
	mailMode         bool
	makeTables       bool
	noAnchors        bool
	explicitHeadings bool
	mosaicHeaders    bool
	headingRegexps   []string
	linkOnly         bool
	shortLineLength  int
	parIndent        int
	indentWidth      int
	indentParBreak   bool
	preserveIndent   bool
	hruleMin         int
	minCapsLength    int
	capsTag          string
	noUnhyphenation  bool
}

// preformatFlags holds preformatted-block detection flags.
type preformatFlags struct {
	triggerLines    int
	endTriggerLines int
	whitespaceMin   int
	useMarker       bool
	startMarker     string
	endMarker       string
}

// linkFlags holds link dictionary flags.
type linkFlags struct {
	noLinks     bool
	dicts       []string
	systemDict  string
	defaultDict string
	dictDebug   int
}

// batchFlags holds parallel batch conversion flags.
type batchFlags struct {
	batch   bool
	outDir  string
	workers int
}

// cliFlags holds all flags for the txt2html command.
type cliFlags struct {
	common    commonFlags
	output    outputFlags
	envelope  envelopeFlags
	structure structureFlags
	preformat preformatFlags
	links     linkFlags
	batch     batchFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress detail")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.outfile, "outfile", "o", "-", "output file (- = stdout)")
	fs.BoolVar(&f.extract, "extract", false, "emit the converted body only, no envelope")
	fs.BoolVar(&f.xhtml, "xhtml", false, "emit XHTML (implies lowercase tags)")
	fs.BoolVar(&f.lowerCaseTags, "lower-case-tags", false, "emit lowercase structural tags")
	fs.BoolVar(&f.eightBitClean, "eight-bit-clean", false, "pass 8-bit characters through untranslated")
	fs.BoolVar(&f.latin1, "latin1", false, "decode input as ISO 8859-1")
}

func addEnvelopeFlags(fs *flag.FlagSet, f *envelopeFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "document title")
	fs.BoolVar(&f.titleFirst, "titlefirst", false, "take the title from the first non-blank line")
	fs.StringVar(&f.doctype, "doctype", "", "doctype identifier")
	fs.StringVar(&f.styleURL, "style-url", "", "stylesheet link href")
	fs.StringVar(&f.bodyDeco, "body-deco", "", "attribute string for the body tag")
	fs.StringVar(&f.appendFile, "append-file", "", "file spliced verbatim before the body close")
	fs.StringVar(&f.appendHead, "append-head", "", "file spliced verbatim into the head")
	fs.StringVar(&f.prependFile, "prepend-file", "", "file spliced verbatim after the body open")
}

func addStructureFlags(fs *flag.FlagSet, f *structureFlags) {
	fs.BoolVar(&f.mailMode, "mail", false, "mail mode: recognize headers and quoting")
	fs.BoolVar(&f.makeTables, "tables", false, "detect aligned columns as tables")
	fs.BoolVar(&f.noAnchors, "no-anchors", false, "do not place section anchors on headings")
	fs.BoolVar(&f.explicitHeadings, "explicit-headings", false, "heading regex ordinal fixes the level")
	fs.BoolVar(&f.mosaicHeaders, "mosaic-headers", false, "only Mosaic underline characters make headings")
	fs.StringArrayVar(&f.headingRegexps, "heading-regexp", nil, "custom heading regexp (repeatable, ordered)")
	fs.BoolVar(&f.linkOnly, "link-only", false, "skip structural analysis, apply links only")
	fs.IntVar(&f.shortLineLength, "short-line", 0, "line length under which a break is kept")
	fs.IntVar(&f.parIndent, "par-indent", 0, "indent jump that starts a new paragraph")
	fs.IntVar(&f.indentWidth, "indent-width", 0, "spaces per indent level")
	fs.BoolVar(&f.indentParBreak, "indent-par-break", false, "indent jump breaks the line instead of the paragraph")
	fs.BoolVar(&f.preserveIndent, "preserve-indent", false, "keep paragraph indentation as non-breaking spaces")
	fs.IntVar(&f.hruleMin, "hrule-min", 0, "rule characters needed for a horizontal rule")
	fs.IntVar(&f.minCapsLength, "min-caps", 0, "consecutive capitals needed for a caps line")
	fs.StringVar(&f.capsTag, "caps-tag", "", "tag wrapped around all-caps lines")
	fs.BoolVar(&f.noUnhyphenation, "no-unhyphenation", false, "keep end-of-line hyphenation")
}

func addPreformatFlags(fs *flag.FlagSet, f *preformatFlags) {
	fs.IntVar(&f.triggerLines, "pre-trigger", -1, "preformat-looking lines that open a block (0-2)")
	fs.IntVar(&f.endTriggerLines, "endpre-trigger", -1, "normal lines that close a block (0-2)")
	fs.IntVar(&f.whitespaceMin, "pre-whitespace-min", 0, "space/dot run that makes a line preformat-looking")
	fs.BoolVar(&f.useMarker, "pre-marker", false, "only literal pre markers open preformatted blocks")
	fs.StringVar(&f.startMarker, "pre-start-marker", "", "regexp matching the preformat start marker")
	fs.StringVar(&f.endMarker, "pre-end-marker", "", "regexp matching the preformat end marker")
}

func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.BoolVar(&f.noLinks, "no-links", false, "skip the link dictionary entirely")
	fs.StringArrayVarP(&f.dicts, "dict", "d", nil, "link dictionary file (repeatable, ordered)")
	fs.StringVar(&f.systemDict, "system-dict", "", "system dictionary file (default: built in)")
	fs.StringVar(&f.defaultDict, "default-dict", "", "per-user dictionary file")
	fs.IntVar(&f.dictDebug, "dict-debug", 0, "dictionary debug bitfield")
}

func addBatchFlags(fs *flag.FlagSet, f *batchFlags) {
	fs.BoolVar(&f.batch, "batch", false, "convert each input to its own .html file")
	fs.StringVar(&f.outDir, "outdir", "", "output directory for batch mode")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for batch mode (0 = auto)")
}

// parseFlags parses the command line and returns the flags, the flag set
// (for Changed checks against config-file values), and positional args.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, []string, error) {
	fs := flag.NewFlagSet("txt2html", flag.ContinueOnError)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addEnvelopeFlags(fs, &f.envelope)
	addStructureFlags(fs, &f.structure)
	addPreformatFlags(fs, &f.preformat)
	addLinkFlags(fs, &f.links)
	addBatchFlags(fs, &f.batch)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}
