// Package prompt implements the line-based question/answer exchange used to
// fill in missing composition parameters. It is deliberately not coupled to
// a terminal: any line-oriented reader works, which is also how the tests
// drive it.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Asker reads answers line by line from in and writes questions and
// diagnostics to out.
type Asker struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New returns an Asker over the given reader and writer.
func New(in io.Reader, out io.Writer) *Asker {
	return &Asker{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// IntInRange asks for an integer in [min, max] and repeats the question
// until it gets one. An empty answer selects def when def is non-nil. There
// is no retry limit; the only error conditions are an exhausted or failing
// input stream.
func (a *Asker) IntInRange(label string, min, max int, def *int) (int, error) {
	for {
		if def != nil {
			fmt.Fprintf(a.out, "%s [%d..%d] (default %d): ", label, min, max, *def)
		} else {
			fmt.Fprintf(a.out, "%s [%d..%d]: ", label, min, max)
		}

		if !a.scanner.Scan() {
			if err := a.scanner.Err(); err != nil {
				return 0, fmt.Errorf("read answer for %s: %w", label, err)
			}
			return 0, fmt.Errorf("input closed while asking for %s: %w", label, io.ErrUnexpectedEOF)
		}

		answer := strings.TrimSpace(a.scanner.Text())
		if answer == "" {
			if def != nil {
				return *def, nil
			}
			fmt.Fprintf(a.out, "a value is required\n")
			continue
		}

		v, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a number\n", answer)
			continue
		}
		if v < min || v > max {
			fmt.Fprintf(a.out, "%d is outside [%d..%d]\n", v, min, max)
			continue
		}
		return v, nil
	}
}
