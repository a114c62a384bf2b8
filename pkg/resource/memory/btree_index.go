package memory

import (
	"github.com/google/btree"
	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// indexEntry is one (value, row) pair kept in the ordered tree.
type indexEntry struct {
	value domain.Value
	rowID domain.RowId
}

func indexEntryLess(a, b indexEntry) bool {
	if !a.value.Equal(b.value) {
		return a.value.Less(b.value)
	}
	return a.rowID.Less(b.rowID)
}

// btreeIndex maps an indexed column value to the set of RowIds holding it,
// ordered by value. Backed by google/btree for the ordered range traversal;
// a side map serves seek (O(1) exact-value lookups) and unique-constraint checks.
type btreeIndex struct {
	schema domain.IndexSchema
	tree   *btree.BTreeG[indexEntry]
	byValue map[string][]domain.RowId // encoded value -> row ids sharing it
}

func newBTreeIndex(schema domain.IndexSchema) *btreeIndex {
	return &btreeIndex{
		schema:  schema,
		tree:    btree.NewG(32, indexEntryLess),
		byValue: make(map[string][]domain.RowId),
	}
}

func valueKey(v domain.Value) string {
	return string(domain.EncodeRow(domain.Row{v}))
}

// violatesUniqueConstraint reports whether inserting value under a new RowId would
// collide with an existing, different RowId in a unique index.
func (idx *btreeIndex) violatesUniqueConstraint(value domain.Value, rowID domain.RowId) bool {
	if !idx.schema.IsUnique {
		return false
	}
	rows, ok := idx.rowsThatViolateUniqueConstraint(value, rowID)
	return ok && len(rows) > 0
}

// rowsThatViolateUniqueConstraint returns existing RowIds under value other than rowID.
func (idx *btreeIndex) rowsThatViolateUniqueConstraint(value domain.Value, rowID domain.RowId) ([]domain.RowId, bool) {
	existing, ok := idx.byValue[valueKey(value)]
	if !ok {
		return nil, false
	}
	var violators []domain.RowId
	for _, r := range existing {
		if r != rowID {
			violators = append(violators, r)
		}
	}
	return violators, len(violators) > 0
}

// insert adds (value, rowID) to the index. Callers must have already preflighted uniqueness.
func (idx *btreeIndex) insert(value domain.Value, rowID domain.RowId) {
	key := valueKey(value)
	for _, r := range idx.byValue[key] {
		if r == rowID {
			return
		}
	}
	idx.byValue[key] = append(idx.byValue[key], rowID)
	idx.tree.ReplaceOrInsert(indexEntry{value: value, rowID: rowID})
}

// delete removes (value, rowID) from the index.
func (idx *btreeIndex) delete(value domain.Value, rowID domain.RowId) {
	key := valueKey(value)
	rows := idx.byValue[key]
	for i, r := range rows {
		if r == rowID {
			idx.byValue[key] = append(rows[:i], rows[i+1:]...)
			break
		}
	}
	if len(idx.byValue[key]) == 0 {
		delete(idx.byValue, key)
	}
	idx.tree.Delete(indexEntry{value: value, rowID: rowID})
}

// seek returns every RowId indexed under the exact value.
func (idx *btreeIndex) seek(value domain.Value) []domain.RowId {
	rows := idx.byValue[valueKey(value)]
	out := make([]domain.RowId, len(rows))
	copy(out, rows)
	return out
}

// rangeValues returns RowIds whose indexed value satisfies contains, in value order.
func (idx *btreeIndex) rangeValues(contains func(domain.Value) bool) []domain.RowId {
	var out []domain.RowId
	idx.tree.Ascend(func(e indexEntry) bool {
		if contains(e.value) {
			out = append(out, e.rowID)
		}
		return true
	})
	return out
}

// buildFromRows bulk-populates the index from a full table scan.
func (idx *btreeIndex) buildFromRows(rows map[domain.RowId]domain.Row, col domain.ColId) {
	for rowID, row := range rows {
		if int(col) >= len(row) {
			continue
		}
		idx.insert(row[col], rowID)
	}
}

// emptyClone returns a new, empty index with the same schema,
// used when a shadow table inherits an index shell from the committed table.
func (idx *btreeIndex) emptyClone() *btreeIndex {
	return newBTreeIndex(idx.schema)
}
