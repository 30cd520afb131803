// Package record reads the counted, line-oriented sections of a batch input.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

var (
	// ErrNoSection is returned by Count when the input is exhausted.
	ErrNoSection = errors.New("no more sections")
	// ErrMalformedCount is returned by Count when the count line is not an integer.
	ErrMalformedCount = errors.New("malformed section count")
)

var fieldPattern = regexp.MustCompile(`"([^"]*)"|(\S+)`)

// Tokenize splits line on whitespace. A double-quoted substring is one field
// with the quotes removed and may be empty.
func Tokenize(line string) []string {
	matches := fieldPattern.FindAllStringSubmatchIndex(line, -1)
	fields := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[2] >= 0 {
			fields = append(fields, line[m[2]:m[3]])
			continue
		}
		fields = append(fields, line[m[4]:m[5]])
	}
	return fields
}

// Reader yields input lines and tracks the current line number.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next raw line. ok is false at end of input.
func (r *Reader) Next() (line string, ok bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return r.sc.Text(), true
}

// Fields returns the next line split into fields.
func (r *Reader) Fields() ([]string, bool) {
	line, ok := r.Next()
	if !ok {
		return nil, false
	}
	return Tokenize(line), true
}

// Count reads a section header holding the number of records that follow.
func (r *Reader) Count() (int, error) {
	line, ok := r.Next()
	if !ok {
		if err := r.sc.Err(); err != nil {
			return 0, fmt.Errorf("read count: %w", err)
		}
		return 0, ErrNoSection
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w at line %d: %q", ErrMalformedCount, r.line, line)
	}
	return n, nil
}

// Discard skips up to n lines and reports how many were skipped.
func (r *Reader) Discard(n int) int {
	skipped := 0
	for ; skipped < n; skipped++ {
		if _, ok := r.Next(); !ok {
			break
		}
	}
	return skipped
}

// Line returns the number of the last line read, starting at 1.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first non-EOF read error.
func (r *Reader) Err() error {
	return r.sc.Err()
}
