package rnastruct

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// IndexEntry selects Count consecutive residues of Chain, starting at the
// residue numbered Start.
type IndexEntry struct {
	Chain string
	Start int
	Count int
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%s:%d:%d", e.Chain, e.Start, e.Count)
}

// LoadIndex reads an index specification from a file. See ParseIndex.
func LoadIndex(fpath string) ([]IndexEntry, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ParseIndex(f)
	if err != nil {
		return nil, fmt.Errorf("Could not read index '%s': %s", fpath, err)
	}
	return entries, nil
}

// ParseIndex reads "chain:start:count" entries. Entries are separated by
// commas or newlines, so that
//
//	A:1:10,A:15:5
//	B:1:20
//
// selects three runs. Blank lines and lines starting with '#' are ignored.
// Any entry without exactly three fields, whose start or count is not an
// integer, or whose count is not positive, is an error.
func ParseIndex(r io.Reader) ([]IndexEntry, error) {
	entries := make([]IndexEntry, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		row := strings.TrimSpace(scanner.Text())
		if len(row) == 0 || strings.HasPrefix(row, "#") {
			continue
		}
		for _, field := range strings.Split(row, ",") {
			entry, err := parseIndexEntry(field)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseIndexEntry(field string) (IndexEntry, error) {
	parts := strings.Split(strings.TrimSpace(field), ":")
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("Bad index entry: '%s'", field)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return IndexEntry{}, fmt.Errorf("Bad start position in index "+
			"entry '%s': %s", field, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return IndexEntry{}, fmt.Errorf("Bad count in index entry '%s': %s",
			field, err)
	}
	if count < 1 {
		return IndexEntry{}, fmt.Errorf("Bad count in index entry '%s': "+
			"%d is not positive", field, count)
	}
	return IndexEntry{Chain: strings.TrimSpace(parts[0]), Start: start,
		Count: count}, nil
}
