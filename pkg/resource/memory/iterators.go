package memory

import "github.com/kasuganosora/memstore/pkg/resource/domain"

// RowIter is a single-pass, non-restartable cursor over (RowId, Row) pairs.
// It borrows the transaction it was built from and must not outlive it.
type RowIter struct {
	entries []rowEntry
	pos     int
}

// Next advances the cursor and reports whether a row was available.
func (it *RowIter) Next() (domain.RowId, domain.Row, bool) {
	if it.pos >= len(it.entries) {
		return domain.RowId{}, nil, false
	}
	e := it.entries[it.pos]
	it.pos++
	return e.id, e.row, true
}

func newRowIter(entries []rowEntry) *RowIter {
	return &RowIter{entries: entries}
}

// scanIter implements the {Start, Committed, CurrentTx} state machine of a
// full table scan: committed rows not shadowed by the active transaction,
// then every shadow-inserted row, each exactly once.
func scanIter(committed *table, shadow *table, tx *txState, id domain.TableId) *RowIter {
	var entries []rowEntry
	if committed != nil {
		for _, e := range committed.scanRows() {
			if tx.getRowOp(id, e.id) == rowAbsent {
				entries = append(entries, e)
			}
		}
	}
	if shadow != nil {
		entries = append(entries, shadow.scanRows()...)
	}
	return newRowIter(entries)
}

// scanSeekIter performs a full scan filtered by equality on col, used when no
// index covers the seek.
func scanSeekIter(committed *table, shadow *table, tx *txState, id domain.TableId, col domain.ColId, value domain.Value) *RowIter {
	base := scanIter(committed, shadow, tx, id)
	var filtered []rowEntry
	for {
		rowID, row, ok := base.Next()
		if !ok {
			break
		}
		if int(col) < len(row) && row[col].Equal(value) {
			filtered = append(filtered, rowEntry{id: rowID, row: row})
		}
	}
	return newRowIter(filtered)
}

// indexSeekIter merges shadow-index matches with committed-index matches,
// filtering the committed side by the transaction's tombstone set.
func indexSeekIter(committed *table, shadow *table, tx *txState, id domain.TableId, col domain.ColId, value domain.Value) *RowIter {
	var entries []rowEntry
	seen := make(map[domain.RowId]struct{})

	if shadow != nil {
		if idx, ok := shadow.indexes[col]; ok {
			for _, rowID := range idx.seek(value) {
				if row, ok := shadow.getRow(rowID); ok {
					if _, dup := seen[rowID]; !dup {
						entries = append(entries, rowEntry{id: rowID, row: row})
						seen[rowID] = struct{}{}
					}
				}
			}
		}
	}

	if committed != nil {
		if idx, ok := committed.indexes[col]; ok {
			for _, rowID := range idx.seek(value) {
				if tx.getRowOp(id, rowID) == rowDelete {
					continue
				}
				if _, dup := seen[rowID]; dup {
					continue
				}
				if row, ok := committed.getRow(rowID); ok {
					entries = append(entries, rowEntry{id: rowID, row: row})
					seen[rowID] = struct{}{}
				}
			}
		}
	}

	return newRowIter(entries)
}

// rangeScanIter is always scan-based: it filters a full table scan by contains(row[col]).
func rangeScanIter(committed *table, shadow *table, tx *txState, id domain.TableId, col domain.ColId, contains func(domain.Value) bool) *RowIter {
	base := scanIter(committed, shadow, tx, id)
	var filtered []rowEntry
	for {
		rowID, row, ok := base.Next()
		if !ok {
			break
		}
		if int(col) < len(row) && contains(row[col]) {
			filtered = append(filtered, rowEntry{id: rowID, row: row})
		}
	}
	return newRowIter(filtered)
}
