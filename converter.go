package txt2html

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-txt2html/internal/assets"
)

// Converter turns plain text into structured HTML. Create with
// NewConverter, convert with ConvertDocument or ConvertFragment, and Close
// (or a new ConvertDocument call) to reset structural state.
//
// A Converter is not safe for concurrent use; create one per goroutine, or
// use a ConverterPool. The compiled link dictionary is immutable and shared
// freely.
type Converter struct {
	opts Options
	diag io.Writer

	dict *LinkDict
	memo *onceMemo
	res  compiledPatterns

	// Structural carry-over state.
	mode       Mode
	pOpen      bool
	listStack  []listFrame
	prevAction LineAction

	// Heading bookkeeping.
	headingStyles   map[string]int
	headingCounters []int

	// Mail bookkeeping.
	msgCount       int
	mailHeaderOpen bool
}

// compiledPatterns holds the option-derived regexes, rebuilt by SetOptions.
type compiledPatterns struct {
	hrule    *regexp.Regexp
	caps     *regexp.Regexp
	preRun   *regexp.Regexp // run of spaces
	preDots  *regexp.Regexp // run of dots
	preStart *regexp.Regexp
	preEnd   *regexp.Regexp
	custom   []*regexp.Regexp
}

// Option configures a Converter at construction time.
type Option func(*Converter)

// WithOptions replaces the full option set.
func WithOptions(o Options) Option {
	return func(c *Converter) { c.opts = o }
}

// WithDiagWriter redirects diagnostic output (default os.Stderr).
func WithDiagWriter(w io.Writer) Option {
	return func(c *Converter) { c.diag = w }
}

// NewConverter creates a Converter with default options overridden by the
// given options. It validates options and compiles the link dictionaries.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		opts: DefaultOptions(),
		diag: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.SetOptions(c.opts); err != nil {
		return nil, err
	}
	return c, nil
}

// SetOptions replaces the option set between documents. It revalidates,
// recompiles derived patterns, and reloads link dictionaries. Structural
// state is reset.
func (c *Converter) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	c.opts = o

	if err := c.compilePatterns(); err != nil {
		return err
	}
	if err := c.loadDictionaries(); err != nil {
		return err
	}
	c.resetDocumentState()
	return nil
}

// Close resets all structural and memo state. The converter remains usable.
func (c *Converter) Close() error {
	c.resetDocumentState()
	return nil
}

func (c *Converter) resetDocumentState() {
	c.mode = Mode{}
	c.pOpen = false
	c.listStack = nil
	c.prevAction = LineAction{}
	c.headingStyles = make(map[string]int)
	c.headingCounters = nil
	c.msgCount = 0
	if c.dict != nil {
		c.memo = newOnceMemo(c.dict.Len())
	}
}

// compilePatterns rebuilds the option-derived regexes.
func (c *Converter) compilePatterns() error {
	o := &c.opts

	c.res.hrule = regexp.MustCompile(
		`^\s*(?:[-_~=*] *){` + strconv.Itoa(o.HruleMin) + `,}$`)

	// Latin-1 aware caps line: no lowercase letters anywhere, at least
	// MinCapsLength consecutive uppercase letters somewhere.
	lower := `a-zß-öø-ÿ`
	upper := `A-ZÀ-ÖØ-Þ`
	c.res.caps = regexp.MustCompile(
		`^[^` + lower + `]*[` + upper + `]{` + strconv.Itoa(o.MinCapsLength) + `,}[^` + lower + `]*$`)

	min := strconv.Itoa(o.PreformatWhitespaceMin)
	c.res.preRun = regexp.MustCompile(` {` + min + `,}\S`)
	c.res.preDots = regexp.MustCompile(`\.{` + min + `,}\S`)

	var err error
	if c.res.preStart, err = regexp.Compile(o.PreformatStartMarker); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreMarker, err)
	}
	if c.res.preEnd, err = regexp.Compile(o.PreformatEndMarker); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreMarker, err)
	}

	c.res.custom = c.res.custom[:0]
	for _, expr := range o.CustomHeadingRegexp {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidHeadingRegexp, expr, err)
		}
		c.res.custom = append(c.res.custom, re)
	}
	return nil
}

// loadDictionaries compiles the link dictionary chain: the system
// dictionary (embedded standard dictionary when unset), the per-user
// default dictionary, then any explicitly listed dictionaries, in order.
// Unreadable files are reported and skipped; parse errors fail fast.
func (c *Converter) loadDictionaries() error {
	if !c.opts.MakeLinks {
		c.dict = nil
		c.memo = nil
		return nil
	}

	b := newDictBuilder(c.diag, c.opts.DictDebug)

	if c.opts.SystemLinkDict != "" {
		if err := c.addDictFile(b, c.opts.SystemLinkDict); err != nil {
			return err
		}
	} else {
		if err := b.AddSource("standard.dict", strings.NewReader(assets.StandardDict())); err != nil {
			return err
		}
	}

	if c.opts.DefaultLinkDict != "" {
		if err := c.addDictFile(b, c.opts.DefaultLinkDict); err != nil {
			return err
		}
	}
	for _, path := range c.opts.LinksDictionaries {
		if err := c.addDictFile(b, path); err != nil {
			return err
		}
	}

	c.dict = b.Build()
	c.memo = newOnceMemo(c.dict.Len())
	return nil
}

// addDictFile parses one dictionary file. A missing or unreadable file is
// reported and skipped; a malformed file is a hard error.
func (c *Converter) addDictFile(b *dictBuilder, path string) error {
	f, err := os.Open(path) // #nosec G304 -- dictionary path is user-provided
	if err != nil {
		fmt.Fprintf(c.diag, "txt2html: %v: %v\n", ErrAuxFileNotReadable, err)
		return nil
	}
	defer f.Close()
	return b.AddSource(path, f)
}

// Tag case helpers. Structural tag names are stored upper-case and
// rendered per the lower_case_tags option (forced on by xhtml).

func (c *Converter) tagName(name string) string {
	if c.opts.LowerCaseTags {
		return strings.ToLower(name)
	}
	return name
}

func (c *Converter) tag(name string) string {
	return "<" + c.tagName(name) + ">"
}

func (c *Converter) ctag(name string) string {
	return "</" + c.tagName(name) + ">"
}

func (c *Converter) brTag() string {
	if c.opts.XHTML {
		return "<br/>"
	}
	return c.tag("BR")
}

func (c *Converter) hrTag() string {
	if c.opts.XHTML {
		return "<hr/>"
	}
	return c.tag("HR")
}

// openPara returns the paragraph open tag and records the pending close.
func (c *Converter) openPara() string {
	c.pOpen = true
	return c.tag("P")
}

// closePara closes a pending paragraph. The close tag is emitted lazily
// when the next block construct opens; HTML 3.2 allows the end tag to be
// omitted, so a paragraph still open at the very end of output stays open
// unless xhtml output is selected.
func (c *Converter) closePara() string {
	if !c.pOpen {
		return ""
	}
	c.pOpen = false
	return c.ctag("P") + "\n"
}
