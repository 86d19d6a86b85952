package normalize

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

// Drop is the replacement name which causes matching records to be removed
// from the output without reporting an error.
const Drop = "-"

// Table maps residue or atom names found in input files to their normalized
// names.
type Table map[string]string

var (
	//go:embed data/residues.list
	defaultResidues []byte

	//go:embed data/atoms.list
	defaultAtoms []byte
)

// DefaultResidues returns the built-in residue name table, covering the
// four standard ribonucleotides under their common force field and
// deoxy aliases, with water and ions mapped to Drop.
func DefaultResidues() Table {
	t, err := ReadTable(bytes.NewReader(defaultResidues))
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultAtoms returns the built-in atom name table. Heavy atoms are mapped
// to the current PDB nomenclature and hydrogens are mapped to Drop.
func DefaultAtoms() Table {
	t, err := ReadTable(bytes.NewReader(defaultAtoms))
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTable reads a name table from a file. See ReadTable for the format.
func LoadTable(fpath string) (Table, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("Could not open name table '%s': %s", fpath, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("Could not read name table '%s': %s", fpath, err)
	}
	return t, nil
}

// ReadTable reads lines of whitespace separated "name replacement" pairs.
// Lines starting with '#' and blank lines are ignored. Any other line that
// does not have exactly two fields is an error.
//
// When a name appears more than once, the last replacement wins.
func ReadTable(r io.Reader) (Table, error) {
	t := make(Table)
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || len(strings.TrimSpace(line)) == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields but got %d",
				lineNum, len(fields))
		}
		t[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
