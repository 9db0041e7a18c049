// Package gate models the minimal standard-gate circuit surface the
// Poseidon chip assigns into: advice and fixed columns, a region with a
// monotone row cursor, copy constraints between cells, and a mock
// checker that replays every registered gate on the assigned table.
//
// The real proving system is an external collaborator; this package
// only carries the in-memory assignment so that the in-circuit
// evaluation can be laid out and checked against the native one.
package gate

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type columnKind int

const (
	adviceKind columnKind = iota
	fixedKind
)

// Column is a handle to an advice or fixed column.
type Column struct {
	kind  columnKind
	index int
}

// Cell is a position in the assignment table.
type Cell struct {
	Column Column
	Row    int
}

// AssignedCell is a cell together with the value assigned to it.
type AssignedCell struct {
	cell  Cell
	value fr.Element
}

// Cell returns the position of the assigned cell.
func (a AssignedCell) Cell() Cell {
	return a.cell
}

// Value returns the value assigned to the cell.
func (a AssignedCell) Value() fr.Element {
	return a.value
}

// Row exposes the values of one table row to a gate polynomial.
type Row interface {
	// Advice returns the advice value at the given column.
	Advice(col Column) fr.Element
	// Fixed returns the fixed value at the given column.
	Fixed(col Column) fr.Element
}

type gateEntry struct {
	name string
	poly func(Row) fr.Element
}

// ConstraintSystem allocates columns and registers gates.
type ConstraintSystem struct {
	numAdvice int
	numFixed  int
	gates     []gateEntry
}

// NewConstraintSystem creates an empty ConstraintSystem.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

// AdviceColumn allocates a new advice column.
func (cs *ConstraintSystem) AdviceColumn() Column {
	col := Column{kind: adviceKind, index: cs.numAdvice}
	cs.numAdvice++
	return col
}

// FixedColumn allocates a new fixed column.
func (cs *ConstraintSystem) FixedColumn() Column {
	col := Column{kind: fixedKind, index: cs.numFixed}
	cs.numFixed++
	return col
}

// CreateGate registers a gate. The polynomial must evaluate to zero on
// every row of a satisfied assignment; unassigned cells read as zero.
func (cs *ConstraintSystem) CreateGate(name string, poly func(Row) fr.Element) {
	cs.gates = append(cs.gates, gateEntry{name: name, poly: poly})
}

// Region is an assignment table with a row cursor.
//
// The cursor advances monotonically within one synthesis pass; Reset
// rewinds it to a caller-chosen offset so independent hash layouts can
// share one region. Assigning a cell twice overwrites the value.
type Region struct {
	cs     *ConstraintSystem
	advice []map[int]fr.Element
	fixed  []map[int]fr.Element
	copies [][2]Cell
	offset int
	rows   int
}

// NewRegion creates an empty Region for cs.
func NewRegion(cs *ConstraintSystem) *Region {
	advice := make([]map[int]fr.Element, cs.numAdvice)
	for i := range advice {
		advice[i] = make(map[int]fr.Element)
	}
	fixed := make([]map[int]fr.Element, cs.numFixed)
	for i := range fixed {
		fixed[i] = make(map[int]fr.Element)
	}
	return &Region{cs: cs, advice: advice, fixed: fixed}
}

// Offset returns the current row cursor.
func (r *Region) Offset() int {
	return r.offset
}

// Next advances the row cursor.
func (r *Region) Next() {
	r.offset++
}

// Reset rewinds the row cursor to the given offset.
func (r *Region) Reset(offset int) {
	r.offset = offset
}

func (r *Region) touch(row int) {
	if row+1 > r.rows {
		r.rows = row + 1
	}
}

// AssignAdvice assigns v to col at the current row and returns the
// assigned cell. Assigning to a non-advice column is a programming
// error and panics.
func (r *Region) AssignAdvice(col Column, v fr.Element) AssignedCell {
	if col.kind != adviceKind {
		panic("gate: AssignAdvice on non-advice column")
	}
	r.advice[col.index][r.offset] = v
	r.touch(r.offset)
	return AssignedCell{cell: Cell{Column: col, Row: r.offset}, value: v}
}

// AssignFixed assigns v to col at the current row.
func (r *Region) AssignFixed(col Column, v fr.Element) {
	if col.kind != fixedKind {
		panic("gate: AssignFixed on non-fixed column")
	}
	r.fixed[col.index][r.offset] = v
	r.touch(r.offset)
}

// ConstrainEqual records an equality constraint between two cells.
func (r *Region) ConstrainEqual(a, b Cell) {
	r.copies = append(r.copies, [2]Cell{a, b})
}

func (r *Region) at(c Cell) fr.Element {
	var table []map[int]fr.Element
	if c.Column.kind == adviceKind {
		table = r.advice
	} else {
		table = r.fixed
	}
	return table[c.Column.index][c.Row]
}

type rowView struct {
	region *Region
	row    int
}

func (v rowView) Advice(col Column) fr.Element {
	return v.region.at(Cell{Column: col, Row: v.row})
}

func (v rowView) Fixed(col Column) fr.Element {
	return v.region.at(Cell{Column: col, Row: v.row})
}

// MockCheck replays every registered gate on every assigned row and
// checks all copy constraints. It returns an error naming the first
// violated gate row or copy constraint, and nil if the assignment is
// satisfied.
func (r *Region) MockCheck() error {
	for row := 0; row < r.rows; row++ {
		view := rowView{region: r, row: row}
		for _, g := range r.cs.gates {
			if v := g.poly(view); !v.IsZero() {
				return fmt.Errorf("gate %q not satisfied at row %d", g.name, row)
			}
		}
	}

	for i, pair := range r.copies {
		a, b := r.at(pair[0]), r.at(pair[1])
		if !a.Equal(&b) {
			return fmt.Errorf("copy constraint %d not satisfied: row %d != row %d",
				i, pair[0].Row, pair[1].Row)
		}
	}

	return nil
}
