package game

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader reads whole lines of player input.
type LineReader struct {
	br *bufio.Reader
}

// NewLineReader wraps r for line-at-a-time reads. Lines have no length limit.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReader(r)}
}

// ReadLine blocks until a line is available and returns it with
// surrounding whitespace removed. A final line without a newline is still
// returned. It returns io.EOF once input ends.
func (r *LineReader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// equalFoldASCII compares two strings ignoring ASCII letter case only.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
