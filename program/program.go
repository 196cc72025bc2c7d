// Package program reads hex machine-code listings, one 32-bit word per line.
package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedWord is wrapped by every error reporting a line that is neither a word nor a skip marker.
var ErrMalformedWord = errors.New("malformed instruction word")

// Word is one input line placed at its address.
type Word struct {
	Address uint32
	Raw     uint32
	Line    int  // 1-based source line number
	Skip    bool // line carried the skip marker; Raw is zero
}

// Options controls how lines are placed and classified.
type Options struct {
	TextBase   uint32
	SkipMarker string
}

// MalformedLineError reports the offending source line.
type MalformedLineError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, ErrMalformedWord, e.Text)
}

func (e *MalformedLineError) Unwrap() []error {
	return []error{ErrMalformedWord, e.Err}
}

// ParseFile reads the listing stored at path.
func ParseFile(path string, opts Options) ([]Word, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}

	codefile, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = codefile.Close()
	}()
	return Parse(codefile, opts)
}

// Parse reads every line of r. Blank lines are ignored; skip-marker lines keep their address slot.
func Parse(r io.Reader, opts Options) ([]Word, error) {
	words := make([]Word, 0)
	address := opts.TextBase
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		word := Word{Address: address, Line: lineNum}
		if opts.SkipMarker != "" && strings.Contains(text, opts.SkipMarker) {
			word.Skip = true
		} else {
			raw, err := parseHex(text)
			if err != nil {
				return nil, &MalformedLineError{Line: lineNum, Text: text, Err: err}
			}
			word.Raw = raw
		}
		words = append(words, word)
		address += 4
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return words, nil
}

func parseHex(text string) (uint32, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
