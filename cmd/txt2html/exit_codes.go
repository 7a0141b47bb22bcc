package main

import (
	"errors"
	"os"

	txt2html "github.com/alnah/go-txt2html"
)

// Exit codes for the txt2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // successful conversion
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags, config, or dictionary
	ExitIO      = 3 // file not found, permission denied, write failure
)

// exitCodeFor returns the exit code for an error. Uses errors.Is, so
// wrapped errors classify correctly.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, txt2html.ErrInputNotReadable) ||
		errors.Is(err, txt2html.ErrWrite) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrEmptyConfigName) ||
		errors.Is(err, ErrOutDirNeeded) ||
		errors.Is(err, txt2html.ErrDictParse) ||
		errors.Is(err, txt2html.ErrDictEvalUnsupported) ||
		errors.Is(err, txt2html.ErrInvalidTabWidth) ||
		errors.Is(err, txt2html.ErrInvalidShortLine) ||
		errors.Is(err, txt2html.ErrInvalidHruleMin) ||
		errors.Is(err, txt2html.ErrInvalidCapsLength) ||
		errors.Is(err, txt2html.ErrInvalidHeadingRegexp) ||
		errors.Is(err, txt2html.ErrInvalidPreMarker) {
		return ExitUsage
	}

	return ExitGeneral
}
