package txt2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrInputNotReadable    = errors.New("input not readable")
	ErrAuxFileNotReadable  = errors.New("auxiliary file not readable")
	ErrDictParse           = errors.New("link dictionary parse error")
	ErrDictEvalUnsupported = errors.New("link dictionary 'e' flag not supported (no expression evaluator)")
	ErrWrite               = errors.New("output write failed")

	// Options validation errors.
	ErrInvalidTabWidth      = errors.New("invalid tab width")
	ErrInvalidShortLine     = errors.New("invalid short line length")
	ErrInvalidHruleMin      = errors.New("invalid hrule minimum length")
	ErrInvalidCapsLength    = errors.New("invalid minimum caps length")
	ErrInvalidHeadingRegexp = errors.New("invalid custom heading regexp")
	ErrInvalidPreMarker     = errors.New("invalid preformat marker regexp")
)
