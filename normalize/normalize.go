package normalize

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// The fixed values written in place of the input ones. MolProbity only
// accepts full occupancy, so the input occupancy is always discarded.
const (
	occupancy      = "  1.00"
	tempFactor     = "  0.00"
	defaultChainID = 'A'
)

var defaultLogger = log.New(os.Stderr, "", 0)

// LineError is a problem found on a particular line of the input.
type LineError struct {
	Line int
	Msg  string
}

func (e LineError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
}

// Result is the outcome of normalizing one file.
//
// Text is always filled in, but it must only be used when OK returns true.
type Result struct {
	Text     string
	Errors   []LineError
	Warnings []LineError
}

// OK returns true when no error was found on any line.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Normalizer rewrites coordinate records into a strict fixed-column layout
// using residue and atom name tables. A Normalizer holds no parse state, so
// a single value may be used for any number of files, concurrently.
type Normalizer struct {
	Residues Table
	Atoms    Table

	// Logger receives every error and warning as it is found.
	// When nil, messages are written to stderr.
	Logger *log.Logger
}

// New creates a normalizer with the given residue and atom name tables.
func New(residues, atoms Table) *Normalizer {
	return &Normalizer{Residues: residues, Atoms: atoms}
}

// parseState is threaded through every line of a single parse.
type parseState struct {
	inModel    bool
	inAtom     bool
	chainFound bool
	line       int

	out    *strings.Builder
	result *Result
	logger *log.Logger
}

func (s *parseState) errorf(format string, v ...interface{}) {
	e := LineError{s.line, fmt.Sprintf(format, v...)}
	s.result.Errors = append(s.result.Errors, e)
	s.logger.Printf("ERROR\t%s", e)
}

func (s *parseState) warnf(format string, v ...interface{}) {
	e := LineError{s.line, fmt.Sprintf(format, v...)}
	s.result.Warnings = append(s.result.Warnings, e)
	s.logger.Printf("WARNING\t%s", e)
}

func (s *parseState) emit(row string) {
	s.out.WriteString(row)
	s.out.WriteByte('\n')
}

// ParseFile normalizes the file at in and writes the canonical records to
// out, but only if no error was found. The returned error is only non-nil
// when one of the files could not be read or written.
func (n *Normalizer) ParseFile(in, out string) (Result, error) {
	f, err := os.Open(in)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res, err := n.Parse(f)
	if err != nil {
		return res, fmt.Errorf("Could not read '%s': %s", in, err)
	}
	if !res.OK() {
		return res, nil
	}
	if err := os.WriteFile(out, []byte(res.Text), 0644); err != nil {
		return res, fmt.Errorf("Could not write '%s': %s", out, err)
	}
	return res, nil
}

// Parse normalizes every record read from r. Errors on individual lines do
// not stop the parse: every line is processed so that all problems are
// reported at once. Only MODEL, ENDMDL, TER, ATOM and HETATM records are
// interpreted; all others are left out of the output.
func (n *Normalizer) Parse(r io.Reader) (Result, error) {
	res := Result{}
	s := &parseState{
		out:    new(strings.Builder),
		result: &res,
		logger: n.Logger,
	}
	if s.logger == nil {
		s.logger = defaultLogger
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.line++
		row := strings.TrimRight(scanner.Text(), " \t\r")
		if len(row) < 80 {
			row += strings.Repeat(" ", 80-len(row))
		}

		switch rec := row[0:6]; {
		case rec == "MODEL ":
			n.parseModel(s)
		case rec == "ENDMDL":
			n.parseEndmdl(s)
		case strings.HasPrefix(rec, "TER"):
			n.parseTer(s)
		case rec == "ATOM  " || rec == "HETATM":
			n.parseAtom(s, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	if s.inAtom {
		s.emit("TER")
	}
	res.Text = s.out.String()
	return res, nil
}

func (n *Normalizer) parseModel(s *parseState) {
	if s.inModel {
		s.errorf("'ENDMDL' not found.")
	}
	if s.inAtom {
		s.errorf("Missing 'MODEL' before 'ATOM' declaration.")
	}
	s.inModel = true
}

func (n *Normalizer) parseEndmdl(s *parseState) {
	if !s.inModel {
		s.warnf("Missing 'MODEL' declaration.")
	}
	if s.inAtom {
		s.warnf("Missing 'TER' declaration.")
	}
	s.inModel = false
	s.inAtom = false
	s.emit("ENDMDL")
}

func (n *Normalizer) parseTer(s *parseState) {
	if s.inAtom {
		s.emit("TER")
	}
	s.inAtom = false
}

// parseAtom checks and rewrites a single ATOM/HETATM record. Records whose
// residue or atom name is unknown are reported and left out; records mapped
// to Drop are silently left out.
func (n *Normalizer) parseAtom(s *parseState, row string) {
	serial := row[6:11]
	name := strings.TrimSpace(row[12:16])
	altLoc := row[16]
	resName := strings.TrimSpace(row[17:20])
	chainID := row[21]
	iCode := row[26]
	x, y, z := row[30:38], row[38:46], row[46:54]
	temp := row[60:66]
	element := strings.TrimSpace(row[76:78])
	charge := row[78:80]

	resSeq, err := strconv.Atoi(strings.TrimSpace(row[22:26]))
	if err != nil {
		s.errorf("Bad residue number: '%s'.", row[22:26])
		return
	}

	resNorm, ok := n.Residues[resName]
	if !ok {
		s.errorf("Unknown residue name: '%s'.", resName)
		return
	} else if resNorm == Drop {
		return
	}

	nameNorm, ok := n.Atoms[name]
	if !ok {
		s.errorf("Unknown atom name: '%s' in residue '%s'.", name, resNorm)
		return
	} else if nameNorm == Drop {
		return
	}

	if chainID == ' ' {
		if s.chainFound {
			s.errorf("One of the chains is missing!")
		} else {
			chainID = defaultChainID
		}
	} else {
		s.chainFound = true
	}

	if len(strings.TrimSpace(temp)) == 0 {
		temp = tempFactor
	}
	if len(element) == 0 {
		element = nameNorm[:1]
	}

	s.inAtom = true
	s.emit(fmt.Sprintf("ATOM  %5s %s%c%3s %c%4d%c   %8s%8s%8s%6s%6s"+
		"          %2s%2s",
		serial, atomField(nameNorm), altLoc, resNorm, chainID, resSeq, iCode,
		x, y, z, occupancy, temp, element, charge))
}

// atomField lays out a normalized atom name in the four column name field.
// Names of up to three characters start in the second column.
func atomField(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return fmt.Sprintf(" %-3s", name)
}
