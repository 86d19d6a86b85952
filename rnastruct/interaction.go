package rnastruct

import (
	"errors"
	"fmt"
)

// Kind classifies an interaction between two residues.
type Kind string

const (
	// Pair2D is a canonical Watson-Crick or wobble base pair, the kind of
	// pair found in secondary structure.
	Pair2D Kind = "PAIR_2D"

	// Pair3D is any other base pair.
	Pair3D Kind = "PAIR_3D"

	// Stack is a base stacking.
	Stack Kind = "STACK"
)

// Selectors accepted by (*Structure).Interactions in addition to the names
// of the kinds.
const (
	All  = "ALL"
	Pair = "PAIR"
)

// ErrUnknownKind is returned when interactions are requested for a name that
// is neither a Kind nor one of All and Pair.
var ErrUnknownKind = errors.New("Wrong interaction type, expected 'ALL', " +
	"'PAIR', 'PAIR_2D', 'PAIR_3D' or 'STACK'")

// Interaction is a pair or stacking between the residues at active ranks A
// and B, with A <= B.
//
// Extra holds what distinguishes two interactions of the same kind between
// the same residues. For pairs it is the interacting edge of each residue
// followed by the orientation, as in "WWcis". For stackings it is the
// topology, as in "upward".
type Interaction struct {
	Kind  Kind
	A, B  int
	Extra string
}

func (i Interaction) String() string {
	return fmt.Sprintf("(%s, %d, %d, %s)", i.Kind, i.A, i.B, i.Extra)
}

// Annotation is one interaction reported by an annotator, identified by the
// chain and residue number of each side.
//
// For pairs, Extra1 and Extra2 are the edges of the A and B residues and
// Extra3 is the orientation. For stackings, Extra1 is the topology and the
// other two are unused.
type Annotation struct {
	Kind           Kind
	ChainA         string
	PosA           int
	NTA            byte
	ChainB         string
	PosB           int
	NTB            byte
	Extra1, Extra2 string
	Extra3         string
}

// Annotator classifies the interactions between the residues of the
// coordinate file at path.
type Annotator interface {
	Annotate(path string) ([]Annotation, error)
}

func (a Annotation) extra() string {
	if a.Kind == Stack {
		return a.Extra1
	}
	return a.Extra1 + a.Extra2 + a.Extra3
}

// Interactions returns the interactions of the given kind. The kind may be
// the name of a Kind, Pair for both kinds of pairs, or All for every
// interaction.
func (s *Structure) Interactions(kind string) ([]Interaction, error) {
	switch Kind(kind) {
	case All:
		return s.interactions, nil
	case Pair:
		return s.filter(func(k Kind) bool { return k == Pair2D || k == Pair3D }),
			nil
	case Pair2D, Pair3D, Stack:
		return s.filter(func(k Kind) bool { return k == Kind(kind) }), nil
	}
	return nil, fmt.Errorf("%w (got '%s')", ErrUnknownKind, kind)
}

func (s *Structure) filter(keep func(k Kind) bool) []Interaction {
	filtered := make([]Interaction, 0, len(s.interactions))
	for _, inter := range s.interactions {
		if keep(inter.Kind) {
			filtered = append(filtered, inter)
		}
	}
	return filtered
}

// addAnnotations maps both sides of every annotation to active ranks.
// Annotations with a side outside the active sequence are dropped.
func (s *Structure) addAnnotations(anns []Annotation) {
	s.interactions = make([]Interaction, 0, len(anns))
	for _, ann := range anns {
		a, ok := s.ActiveRank(ann.ChainA, ann.PosA)
		if !ok {
			continue
		}
		b, ok := s.ActiveRank(ann.ChainB, ann.PosB)
		if !ok {
			continue
		}
		if b < a {
			a, b = b, a
		}
		s.interactions = append(s.interactions, Interaction{
			Kind:  ann.Kind,
			A:     a,
			B:     b,
			Extra: ann.extra(),
		})
	}
}
