package main

import (
	"fmt"
	"io"
)

// printUsage writes the command usage summary.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: txt2html [options] [file ...]

Convert plain text to structured HTML. Reads the given files (or stdin)
as one document and writes HTML to stdout or --outfile.

Common options:
  -o, --outfile FILE      output file (- = stdout)
  -t, --title TITLE       document title
      --titlefirst        take the title from the first non-blank line
      --tables            detect aligned columns as tables
      --mail              recognize mail headers and quoting
      --xhtml             emit XHTML
      --extract           emit the converted body only
  -d, --dict FILE         extra link dictionary (repeatable)
      --no-links          skip the link dictionary
  -c, --config FILE       YAML config file
      --batch             convert each input to its own .html file
  -w, --workers N         parallel workers for batch mode

Further flags tune structure detection, preformatting and the link
dictionaries.
`)
}
