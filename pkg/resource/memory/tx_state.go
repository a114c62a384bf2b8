package memory

import "github.com/kasuganosora/memstore/pkg/resource/domain"

// rowOp is the transaction-relative status of a row within a single table.
type rowOp uint8

const (
	rowAbsent rowOp = iota
	rowInsert
	rowDelete
)

// txState is the per-transaction overlay on top of committedState: shadow
// inserted rows per table, and per-table tombstone sets masking committed rows.
type txState struct {
	insertTables  map[domain.TableId]*table
	deleteTables  map[domain.TableId]map[domain.RowId]struct{}
	droppedTables map[domain.TableId]struct{} // tables whose DropTable ran in this tx; applied on merge
}

func newTxState() *txState {
	return &txState{
		insertTables:  make(map[domain.TableId]*table),
		deleteTables:  make(map[domain.TableId]map[domain.RowId]struct{}),
		droppedTables: make(map[domain.TableId]struct{}),
	}
}

func (tx *txState) getInsertTable(id domain.TableId) (*table, bool) {
	if tx == nil {
		return nil, false
	}
	t, ok := tx.insertTables[id]
	return t, ok
}

func (tx *txState) getOrCreateInsertTable(id domain.TableId, committed *table) *table {
	if t, ok := tx.insertTables[id]; ok {
		return t
	}
	var shadow *table
	if committed != nil {
		shadow = committed.cloneEmpty()
	} else {
		shadow = newTable(nil, &domain.TableSchema{TableId: id})
	}
	tx.insertTables[id] = shadow
	return shadow
}

func (tx *txState) getOrCreateDeleteTable(id domain.TableId) map[domain.RowId]struct{} {
	set, ok := tx.deleteTables[id]
	if !ok {
		set = make(map[domain.RowId]struct{})
		tx.deleteTables[id] = set
	}
	return set
}

// getRowOp reports the transaction-relative status of (table, row): tombstone
// wins over a shadow insert, which wins over absent.
func (tx *txState) getRowOp(id domain.TableId, rowID domain.RowId) rowOp {
	if tx == nil {
		return rowAbsent
	}
	if set, ok := tx.deleteTables[id]; ok {
		if _, tombstoned := set[rowID]; tombstoned {
			return rowDelete
		}
	}
	if shadow, ok := tx.insertTables[id]; ok {
		if shadow.contains(rowID) {
			return rowInsert
		}
	}
	return rowAbsent
}

// getRow returns a shadow-inserted row, if present.
func (tx *txState) getRow(id domain.TableId, rowID domain.RowId) (domain.Row, bool) {
	if tx == nil {
		return nil, false
	}
	shadow, ok := tx.insertTables[id]
	if !ok {
		return nil, false
	}
	return shadow.getRow(rowID)
}

// indexSeek returns RowIds matching value on col within the shadow table, if it has that index.
func (tx *txState) indexSeek(id domain.TableId, col domain.ColId, value domain.Value) ([]domain.RowId, bool) {
	shadow, ok := tx.insertTables[id]
	if !ok {
		return nil, false
	}
	idx, ok := shadow.indexes[col]
	if !ok {
		return nil, false
	}
	return idx.seek(value), true
}
