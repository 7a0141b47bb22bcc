package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	txt2html "github.com/alnah/go-txt2html"
	"github.com/alnah/go-txt2html/internal/fileutil"
	"github.com/alnah/go-txt2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config mirrors the option surface as a YAML config file. Flags given on
// the command line override config values.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Envelope  EnvelopeConfig  `yaml:"envelope"`
	Structure StructureConfig `yaml:"structure"`
	Preformat PreformatConfig `yaml:"preformat"`
	Links     LinksConfig     `yaml:"links"`
}

// OutputConfig defines output shape options.
type OutputConfig struct {
	Extract       bool `yaml:"extract"`
	XHTML         bool `yaml:"xhtml"`
	LowerCaseTags bool `yaml:"lowerCaseTags"`
	EightBitClean bool `yaml:"eightBitClean"`
}

// EnvelopeConfig defines document envelope options.
type EnvelopeConfig struct {
	Title       string `yaml:"title"`
	TitleFirst  bool   `yaml:"titleFirst"`
	Doctype     string `yaml:"doctype"`
	StyleURL    string `yaml:"styleUrl"`
	BodyDeco    string `yaml:"bodyDeco"`
	AppendFile  string `yaml:"appendFile"`
	AppendHead  string `yaml:"appendHead"`
	PrependFile string `yaml:"prependFile"`
}

// StructureConfig defines structural analysis options.
type StructureConfig struct {
	MailMode         bool     `yaml:"mailMode"`
	MakeTables       bool     `yaml:"makeTables"`
	MakeAnchors      *bool    `yaml:"makeAnchors"` // nil = default (on)
	ExplicitHeadings bool     `yaml:"explicitHeadings"`
	MosaicHeaders    bool     `yaml:"mosaicHeaders"`
	HeadingRegexps   []string `yaml:"headingRegexps"`
	LinkOnly         bool     `yaml:"linkOnly"`
	ShortLineLength  int      `yaml:"shortLineLength"`
	ParIndent        *int     `yaml:"parIndent"` // nil = default
	IndentWidth      int      `yaml:"indentWidth"`
	IndentParBreak   bool     `yaml:"indentParBreak"`
	PreserveIndent   bool     `yaml:"preserveIndent"`
	HruleMin         int      `yaml:"hruleMin"`
	MinCapsLength    int      `yaml:"minCapsLength"`
	CapsTag          string   `yaml:"capsTag"`
	Unhyphenation    *bool    `yaml:"unhyphenation"` // nil = default (on)
	TabWidth         int      `yaml:"tabWidth"`
}

// PreformatConfig defines preformatted-block options.
type PreformatConfig struct {
	TriggerLines    *int   `yaml:"triggerLines"`
	EndTriggerLines *int   `yaml:"endTriggerLines"`
	WhitespaceMin   int    `yaml:"whitespaceMin"`
	UseMarker       bool   `yaml:"useMarker"`
	StartMarker     string `yaml:"startMarker"`
	EndMarker       string `yaml:"endMarker"`
}

// LinksConfig defines link dictionary options.
type LinksConfig struct {
	MakeLinks    *bool    `yaml:"makeLinks"` // nil = default (on)
	Dictionaries []string `yaml:"dictionaries"`
	SystemDict   string   `yaml:"systemDict"`
	DefaultDict  string   `yaml:"defaultDict"`
}

// LoadConfig loads configuration from a file path or a config name
// searched in standard locations. Missing files are an error; there is no
// silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config by name: current directory
// first, then the user config directory, trying .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userDir, "go-txt2html", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// applyTo layers the config file values onto an option set.
func (cfg *Config) applyTo(o *txt2html.Options) {
	o.Extract = cfg.Output.Extract
	o.XHTML = cfg.Output.XHTML
	o.LowerCaseTags = cfg.Output.LowerCaseTags
	o.EightBitClean = cfg.Output.EightBitClean

	if cfg.Envelope.Title != "" {
		o.Title = cfg.Envelope.Title
	}
	o.TitleFirst = cfg.Envelope.TitleFirst
	if cfg.Envelope.Doctype != "" {
		o.Doctype = cfg.Envelope.Doctype
	}
	o.StyleURL = cfg.Envelope.StyleURL
	o.BodyDeco = cfg.Envelope.BodyDeco
	o.AppendFile = cfg.Envelope.AppendFile
	o.AppendHead = cfg.Envelope.AppendHead
	o.PrependFile = cfg.Envelope.PrependFile

	s := cfg.Structure
	o.MailMode = s.MailMode
	o.MakeTables = s.MakeTables
	if s.MakeAnchors != nil {
		o.MakeAnchors = *s.MakeAnchors
	}
	o.ExplicitHeadings = s.ExplicitHeadings
	o.UseMosaicHeader = s.MosaicHeaders
	if len(s.HeadingRegexps) > 0 {
		o.CustomHeadingRegexp = s.HeadingRegexps
	}
	o.LinkOnly = s.LinkOnly
	if s.ShortLineLength > 0 {
		o.ShortLineLength = s.ShortLineLength
	}
	if s.ParIndent != nil {
		o.ParIndent = *s.ParIndent
	}
	if s.IndentWidth > 0 {
		o.IndentWidth = s.IndentWidth
	}
	o.IndentParBreak = s.IndentParBreak
	o.PreserveIndent = s.PreserveIndent
	if s.HruleMin > 0 {
		o.HruleMin = s.HruleMin
	}
	if s.MinCapsLength > 0 {
		o.MinCapsLength = s.MinCapsLength
	}
	if s.CapsTag != "" {
		o.CapsTag = s.CapsTag
	}
	if s.Unhyphenation != nil {
		o.Unhyphenation = *s.Unhyphenation
	}
	if s.TabWidth > 0 {
		o.TabWidth = s.TabWidth
	}

	p := cfg.Preformat
	if p.TriggerLines != nil {
		o.PreformatTriggerLines = *p.TriggerLines
	}
	if p.EndTriggerLines != nil {
		o.EndpreformatTriggerLines = *p.EndTriggerLines
	}
	if p.WhitespaceMin > 0 {
		o.PreformatWhitespaceMin = p.WhitespaceMin
	}
	o.UsePreformatMarker = p.UseMarker
	if p.StartMarker != "" {
		o.PreformatStartMarker = p.StartMarker
	}
	if p.EndMarker != "" {
		o.PreformatEndMarker = p.EndMarker
	}

	l := cfg.Links
	if l.MakeLinks != nil {
		o.MakeLinks = *l.MakeLinks
	}
	if len(l.Dictionaries) > 0 {
		o.LinksDictionaries = l.Dictionaries
	}
	o.SystemLinkDict = l.SystemDict
	o.DefaultLinkDict = l.DefaultDict
}
