package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineSize = 1024 * 1024

// openSource opens path for reading. Failures wrap ErrSourceUnavailable.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrSourceUnavailable, path, err)
	}
	return f, nil
}

// scanLines calls fn for every line of r. A leading UTF-8 BOM is dropped
// and CRLF endings are trimmed to the bare line.
func scanLines(r io.Reader, fn func(line string)) error {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}

// ReadLines loads every line of the file at path.
func ReadLines(path string) ([]string, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	if err := scanLines(f, func(line string) {
		lines = append(lines, line)
	}); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", ErrSourceUnavailable, path, err)
	}
	return lines, nil
}
