package memory

import (
	"math/big"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// insertRow substitutes auto-inc zero values, then runs the insert pipeline.
func (in *Inner) insertRow(tableID domain.TableId, row domain.Row) (domain.Row, error) {
	schema, err := in.schemaForTable(tableID)
	if err != nil {
		return nil, err
	}

	substituted := append(domain.Row(nil), row...)
	for _, col := range schema.Columns {
		if !col.IsAutoInc || int(col.ColId) >= len(substituted) {
			continue
		}
		val := substituted[col.ColId]
		if !val.IsNumeric() || !val.IsZero() {
			continue
		}
		seqID, ok := in.sequenceIdForColumn(tableID, col.ColId)
		if !ok {
			continue
		}
		next, err := in.getNextSequenceValue(seqID)
		if err != nil {
			return nil, err
		}
		coerced, err := sequenceValueToValue(next, col.ColType, col.ColId)
		if err != nil {
			return nil, err
		}
		substituted[col.ColId] = coerced
	}

	return in.insertRowInternal(tableID, substituted)
}

// sequenceIdForColumn finds the st_sequence row matching (table_id, col_id).
func (in *Inner) sequenceIdForColumn(tableID domain.TableId, colID domain.ColId) (domain.SequenceId, bool) {
	for _, row := range in.scanAllRows(domain.StSequenceId) {
		if domain.TableId(row[2].Int.Uint64()) == tableID && domain.ColId(row[3].Int.Uint64()) == colID {
			return domain.SequenceId(row[0].Int.Uint64()), true
		}
	}
	return 0, false
}

// sequenceValueToValue tags a sequence's i128 counter value with a column's
// declared integer kind, failing NotInteger for non-integer column kinds. The
// value is neither range-checked against nor truncated to that kind's width.
func sequenceValueToValue(v *big.Int, kind domain.ValueKind, col domain.ColId) (domain.Value, error) {
	switch kind {
	case domain.KindI8, domain.KindU8, domain.KindI16, domain.KindU16,
		domain.KindI32, domain.KindU32, domain.KindI64, domain.KindU64,
		domain.KindI128, domain.KindU128:
		return domain.Value{Kind: kind, Int: new(big.Int).Set(v)}, nil
	default:
		return domain.Value{}, domain.NewErrSequenceNotInteger(col, kind)
	}
}

// insertRowInternal performs the shadow-table unique prechecks, arity check,
// and the actual shadow insert described in the Tx State insert pipeline.
func (in *Inner) insertRowInternal(tableID domain.TableId, row domain.Row) (domain.Row, error) {
	if !in.tableExists(tableID) {
		return nil, domain.NewErrIdNotFound("table", uint32(tableID))
	}
	schema, err := in.schemaForTable(tableID)
	if err != nil {
		return nil, err
	}
	committed, _ := in.committed.getTable(tableID)
	shadow := in.tx.getOrCreateInsertTable(tableID, committed)

	encoded := domain.EncodeRow(row)
	rowID := domain.ComputeDataKey(encoded)

	tableName := schema.TableName
	colName := func(col domain.ColId) string {
		for _, c := range schema.Columns {
			if c.ColId == col {
				return c.ColName
			}
		}
		return ""
	}

	for col, idx := range shadow.indexes {
		if !idx.schema.IsUnique || int(col) >= len(row) {
			continue
		}
		if idx.violatesUniqueConstraint(row[col], rowID) {
			return nil, domain.NewErrUniqueConstraintViolation(idx.schema.IndexName, tableName, colName(col), row[col])
		}
	}

	if committed != nil {
		for col, idx := range committed.indexes {
			if !idx.schema.IsUnique || int(col) >= len(row) {
				continue
			}
			violators, ok := idx.rowsThatViolateUniqueConstraint(row[col], rowID)
			if !ok {
				continue
			}
			for _, v := range violators {
				if in.tx.getRowOp(tableID, v) != rowDelete {
					return nil, domain.NewErrUniqueConstraintViolation(idx.schema.IndexName, tableName, colName(col), row[col])
				}
			}
		}
	}

	rowType, err := in.rowTypeForTable(tableID)
	if err != nil {
		return nil, err
	}
	if len(row) != len(rowType) {
		return nil, domain.NewErrRowInvalidType(tableID, row)
	}

	shadow.insert(rowID, row)
	if rowID.Kind == domain.DataKeyHash {
		in.blobs.put(rowID, encoded)
	}
	if set, ok := in.tx.deleteTables[tableID]; ok {
		delete(set, rowID)
	}

	return row, nil
}

// deleteRow tombstones a row if it is currently live. Idempotent.
func (in *Inner) deleteRow(tableID domain.TableId, rowID domain.RowId) bool {
	if !in.containsRow(tableID, rowID) {
		return false
	}
	set := in.tx.getOrCreateDeleteTable(tableID)
	set[rowID] = struct{}{}
	if shadow, ok := in.tx.getInsertTable(tableID); ok {
		shadow.delete(rowID)
	}
	return true
}

// deleteRowsIn deletes each row by recomputing its RowId, returning how many existed.
func (in *Inner) deleteRowsIn(tableID domain.TableId, rows []domain.Row) int {
	count := 0
	for _, row := range rows {
		rowID := domain.ComputeDataKey(domain.EncodeRow(row))
		if in.deleteRow(tableID, rowID) {
			count++
		}
	}
	return count
}

// scan returns a full-table iterator, or IdNotFound.
func (in *Inner) scan(tableID domain.TableId) (*RowIter, error) {
	if !in.tableExists(tableID) {
		return nil, domain.NewErrIdNotFound("table", uint32(tableID))
	}
	return in.scanRows(tableID), nil
}

// seek returns an iterator over rows matching value on col, index-merged when possible.
func (in *Inner) seek(tableID domain.TableId, col domain.ColId, value domain.Value) (*RowIter, error) {
	if !in.tableExists(tableID) {
		return nil, domain.NewErrIdNotFound("table", uint32(tableID))
	}
	committed, _ := in.committed.getTable(tableID)
	shadow, _ := in.tx.getInsertTable(tableID)

	hasIndex := (shadow != nil && shadow.indexes[col] != nil) || (committed != nil && committed.indexes[col] != nil)
	if hasIndex {
		return indexSeekIter(committed, shadow, in.tx, tableID, col, value), nil
	}
	return scanSeekIter(committed, shadow, in.tx, tableID, col, value), nil
}

// rangeScan is always scan-based: every row whose column col falls within bounds.
func (in *Inner) rangeScan(tableID domain.TableId, col domain.ColId, bounds domain.Range) (*RowIter, error) {
	if !in.tableExists(tableID) {
		return nil, domain.NewErrIdNotFound("table", uint32(tableID))
	}
	committed, _ := in.committed.getTable(tableID)
	shadow, _ := in.tx.getInsertTable(tableID)
	return rangeScanIter(committed, shadow, in.tx, tableID, col, bounds.Contains), nil
}

// getRow returns a single row by id, preferring the shadow overlay.
func (in *Inner) getRow(tableID domain.TableId, rowID domain.RowId) (domain.Row, bool, error) {
	if !in.tableExists(tableID) {
		return nil, false, domain.NewErrIdNotFound("table", uint32(tableID))
	}
	if !in.containsRow(tableID, rowID) {
		return nil, false, nil
	}
	if shadow, ok := in.tx.getInsertTable(tableID); ok {
		if row, ok := shadow.getRow(rowID); ok {
			return row, true, nil
		}
	}
	if committed, ok := in.committed.getTable(tableID); ok {
		if row, ok := committed.getRow(rowID); ok {
			return row, true, nil
		}
	}
	return nil, false, nil
}
