package pcad

import "strings"

// Line is one parsed line of a P-CAD ASCII file. Stray closing
// parentheses belonging to lists opened on earlier lines are skipped.
type Line struct {
	Exprs []*Expr `parser:"( @@ | RParen )*"`
}

// Expr is either a list or an atom.
type Expr struct {
	List *List `parser:"@@"`
	Atom *Atom `parser:"| @@"`
}

// List is a parenthesized expression, e.g. (pt 12.7mm 25.4mm).
// The closing parenthesis is optional because the list may continue on
// a following line.
type List struct {
	Head  string  `parser:"LParen @Symbol?"`
	Items []*Expr `parser:"@@* RParen?"`
}

// Atom is a single value.
type Atom struct {
	String    *string `parser:"@String"`
	Dimension *string `parser:"| @Dimension"`
	Symbol    *string `parser:"| @Symbol"`
}

// Text returns the atom's value with string quotes removed.
func (a *Atom) Text() string {
	switch {
	case a.String != nil:
		return strings.Trim(*a.String, `"`)
	case a.Dimension != nil:
		return *a.Dimension
	case a.Symbol != nil:
		return *a.Symbol
	}
	return ""
}

// Find returns the first list named head, searching depth-first.
func (l *Line) Find(head string) *List {
	return findIn(l.Exprs, head)
}

// Find returns the first nested list named head, searching depth-first.
func (l *List) Find(head string) *List {
	return findIn(l.Items, head)
}

func findIn(exprs []*Expr, head string) *List {
	for _, e := range exprs {
		if e.List == nil {
			continue
		}
		if e.List.Head == head {
			return e.List
		}
		if found := e.List.Find(head); found != nil {
			return found
		}
	}
	return nil
}

// Atoms returns the list's direct atom items.
func (l *List) Atoms() []*Atom {
	var atoms []*Atom
	for _, e := range l.Items {
		if e.Atom != nil {
			atoms = append(atoms, e.Atom)
		}
	}
	return atoms
}
