package util

import (
	"os"

	"github.com/clementbernardd/RNA-assessment/normalize"
	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Structure loads the structure at path, restricted to the residues of the
// index file when index is not empty. No interactions are annotated.
func Structure(path, index string) *rnastruct.Structure {
	s, err := rnastruct.Load(path, rnastruct.Options{Index: index})
	Assert(err, "Could not load structure '%s'", path)
	return s
}

func Table(path string) normalize.Table {
	t, err := normalize.LoadTable(path)
	Assert(err, "Could not read name table '%s'", path)
	return t
}

// tableOrDefault loads the table at path, or returns def() when path is
// empty.
func tableOrDefault(path string, def func() normalize.Table) normalize.Table {
	if len(path) == 0 {
		return def()
	}
	return Table(path)
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}
