package util

import (
	"bufio"
	"io"
	"strings"
)

// ReadLines returns the lines of r with surrounding whitespace removed.
// Blank lines and lines starting with '#' are skipped.
func ReadLines(r io.Reader) []string {
	buf := bufio.NewReader(r)
	lines := make([]string, 0)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			Fatalf("Could not read line: %s.", err)
		}
		line = strings.TrimSpace(line)
		if len(line) > 0 && line[0] != '#' {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
	}
	return lines
}
