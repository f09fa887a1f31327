// Package table provides a read-only table of rows split into one or more
// partitions, each materialized as a dense block. The fitting core consumes
// tables and never mutates them.
package table

import (
	"errors"
	"fmt"
	"strings"

	mat_ "github.com/shardlm/go-shardlm/mat"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoFields        = errors.New("table must have at least one field")
	ErrNoPartitions    = errors.New("table must have at least one partition")
	ErrColMismatch     = errors.New("partition column count does not match fields")
	ErrMissingColumns  = errors.New("missing columns")
	ErrPartOutOfBounds = errors.New("partition index is out of bounds")
)

// Kind is the value type of a table column.
type Kind int

const (
	Float Kind = iota
	String
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "unknown"
}

// Field describes one column by name and kind.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// FloatFields is a convenience constructor for an all-float schema.
func FloatFields(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Kind: Float})
	}
	return fields
}

// Table is an ordered set of fields with rows split across ordered partitions.
// A Table is read-only after construction and safe for concurrent use.
type Table struct {
	fields []Field
	parts  []*mat.Dense
	rows   int
}

// New creates a table from a slice of row groups, one group per partition.
// Every row must have exactly one value per field.
func New(fields []Field, partitions [][][]float64) (*Table, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if len(partitions) == 0 {
		return nil, ErrNoPartitions
	}

	parts := make([]*mat.Dense, 0, len(partitions))
	rows := 0
	for i, rowGroup := range partitions {
		block, err := mat_.NewDenseFromArray(rowGroup)
		if err != nil {
			return nil, fmt.Errorf("partition %d, %w", i, err)
		}
		m, n := block.Dims()
		if n != len(fields) {
			return nil, fmt.Errorf("partition %d has %d columns for %d fields, %w", i, n, len(fields), ErrColMismatch)
		}
		rows += m
		parts = append(parts, block)
	}

	return &Table{
		fields: fields,
		parts:  parts,
		rows:   rows,
	}, nil
}

// FromRows creates a single-partition table from a slice of rows.
func FromRows(fields []Field, rows [][]float64) (*Table, error) {
	return New(fields, [][][]float64{rows})
}

// FromDense creates a single-partition table wrapping an existing dense block.
func FromDense(fields []Field, block *mat.Dense) (*Table, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if block == nil {
		return nil, ErrNoPartitions
	}
	m, n := block.Dims()
	if n != len(fields) {
		return nil, fmt.Errorf("block has %d columns for %d fields, %w", n, len(fields), ErrColMismatch)
	}
	return &Table{
		fields: fields,
		parts:  []*mat.Dense{block},
		rows:   m,
	}, nil
}

// NumRows returns the total row count across all partitions.
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of fields.
func (t *Table) NumCols() int {
	return len(t.fields)
}

// NumPartitions returns the partition count.
func (t *Table) NumPartitions() int {
	return len(t.parts)
}

// Fields returns a copy of the table schema in column order.
func (t *Table) Fields() []Field {
	fields := make([]Field, len(t.fields))
	copy(fields, t.fields)
	return fields
}

// ColumnNames returns the field names in column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.fields))
	for _, field := range t.fields {
		names = append(names, field.Name)
	}
	return names
}

// ColumnIndex returns the column position of the named field.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, field := range t.fields {
		if field.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Partition returns the dense block of the i'th partition. Callers must treat
// the block as read-only.
func (t *Table) Partition(i int) (*mat.Dense, error) {
	if i < 0 || i >= len(t.parts) {
		return nil, fmt.Errorf("partition %d of %d, %w", i, len(t.parts), ErrPartOutOfBounds)
	}
	return t.parts[i], nil
}

// PartitionRows returns the number of rows in the i'th partition.
func (t *Table) PartitionRows(i int) (int, error) {
	block, err := t.Partition(i)
	if err != nil {
		return 0, err
	}
	m, _ := block.Dims()
	return m, nil
}

// Dense materializes all partitions into one dense block in partition order.
func (t *Table) Dense() *mat.Dense {
	if len(t.parts) == 1 {
		return t.parts[0]
	}
	out := mat.NewDense(t.rows, len(t.fields), nil)
	offset := 0
	for _, block := range t.parts {
		m, n := block.Dims()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				out.Set(offset+i, j, block.At(i, j))
			}
		}
		offset += m
	}
	return out
}

// Select projects the named columns, in the given order, across all partitions.
// The returned table shares no data with the receiver. All requested names must
// exist; the error lists every missing column.
func (t *Table) Select(names ...string) (*Table, error) {
	if len(names) == 0 {
		return nil, ErrNoFields
	}

	cols := make([]int, 0, len(names))
	fields := make([]Field, 0, len(names))
	var missing []string
	for _, name := range names {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols = append(cols, idx)
		fields = append(fields, t.fields[idx])
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s, %w", strings.Join(missing, ", "), ErrMissingColumns)
	}

	parts := make([]*mat.Dense, 0, len(t.parts))
	for _, block := range t.parts {
		m, _ := block.Dims()
		out := mat.NewDense(m, len(cols), nil)
		for j, col := range cols {
			for i := 0; i < m; i++ {
				out.Set(i, j, block.At(i, col))
			}
		}
		parts = append(parts, out)
	}

	return &Table{
		fields: fields,
		parts:  parts,
		rows:   t.rows,
	}, nil
}
