package memory

import (
	"fmt"
	"math/big"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// createTable drives st_table/st_columns inserts (allocating table_id via the
// table_id sequence and enforcing name uniqueness through insertRow), creates
// one auto-inc sequence per flagged column, materializes the shadow table,
// then creates each requested index.
func (in *Inner) createTable(def domain.TableDef) (domain.TableId, error) {
	tableRow := domain.Row{domain.NewU32(0), domain.NewString(def.TableName), domain.NewBool(false)}
	result, err := in.insertRow(domain.StTableId, tableRow)
	if err != nil {
		return 0, err
	}
	tableID := domain.TableId(result[0].Int.Uint64())

	colSchemas := make([]domain.ColumnSchema, len(def.Columns))
	for i, c := range def.Columns {
		colID := domain.ColId(i)
		colRow := domain.Row{
			domain.NewU32(uint32(tableID)), domain.NewU32(uint32(colID)), colTypeVal(c.ColType),
			domain.NewString(c.ColName), domain.NewBool(c.IsAutoInc),
		}
		if _, err := in.insertRow(domain.StColumnsId, colRow); err != nil {
			return 0, err
		}
		colSchemas[i] = domain.ColumnSchema{TableId: tableID, ColId: colID, ColName: c.ColName, ColType: c.ColType, IsAutoInc: c.IsAutoInc}
		if c.IsAutoInc {
			seqName := fmt.Sprintf("%s_%s_seq", def.TableName, c.ColName)
			if _, err := in.createSequence(domain.SequenceDef{SequenceName: seqName, TableId: tableID, ColId: colID}); err != nil {
				return 0, err
			}
		}
	}

	rowType := make(domain.RowType, len(colSchemas))
	for i, c := range colSchemas {
		rowType[i] = c.ColType
	}
	schema := &domain.TableSchema{TableId: tableID, TableName: def.TableName, Columns: colSchemas}
	in.createTableInternal(tableID, rowType, schema)

	for _, idxDef := range def.Indexes {
		colID, ok := colIDByName(colSchemas, idxDef.ColName)
		if !ok {
			return 0, domain.NewErrIdNotFound("column", uint32(tableID))
		}
		if _, err := in.createIndex(domain.IndexDef{TableId: tableID, ColId: colID, IndexName: idxDef.IndexName, IsUnique: idxDef.IsUnique}); err != nil {
			return 0, err
		}
	}

	return tableID, nil
}

func colIDByName(cols []domain.ColumnSchema, name string) (domain.ColId, bool) {
	for _, c := range cols {
		if c.ColName == name {
			return c.ColId, true
		}
	}
	return 0, false
}

// createTableInternal materializes an empty shadow table so subsequent
// InsertRow/CreateIndex calls within this transaction can find it.
func (in *Inner) createTableInternal(tableID domain.TableId, rowType domain.RowType, schema *domain.TableSchema) {
	in.tx.insertTables[tableID] = newTable(rowType, schema)
}

// dropTable removes a table's catalog rows and schedules its removal from
// Committed State at merge time (the one known defect the design allows fixing).
func (in *Inner) dropTable(tableID domain.TableId) error {
	if !in.tableExists(tableID) {
		return domain.NewErrIdNotFound("table", uint32(tableID))
	}
	for _, row := range in.scanAllRows(domain.StIndexesId) {
		if domain.TableId(row[1].Int.Uint64()) == tableID {
			if err := in.dropIndex(domain.IndexId(row[0].Int.Uint64())); err != nil {
				return err
			}
		}
	}
	for _, row := range in.scanAllRows(domain.StSequenceId) {
		if domain.TableId(row[2].Int.Uint64()) == tableID {
			if err := in.dropSequence(domain.SequenceId(row[0].Int.Uint64())); err != nil {
				return err
			}
		}
	}
	for _, row := range in.scanAllRows(domain.StColumnsId) {
		if domain.TableId(row[0].Int.Uint64()) == tableID {
			rowID := domain.ComputeDataKey(domain.EncodeRow(row))
			in.deleteRow(domain.StColumnsId, rowID)
		}
	}
	for _, row := range in.scanAllRows(domain.StTableId) {
		if domain.TableId(row[0].Int.Uint64()) == tableID {
			rowID := domain.ComputeDataKey(domain.EncodeRow(row))
			in.deleteRow(domain.StTableId, rowID)
		}
	}
	delete(in.tx.insertTables, tableID)
	in.tx.droppedTables[tableID] = struct{}{}
	return nil
}

// renameTable replaces the st_table row via delete+insert; the name-uniqueness
// index on st_table enforces collisions.
func (in *Inner) renameTable(tableID domain.TableId, newName string) error {
	if !in.tableExists(tableID) {
		return domain.NewErrIdNotFound("table", uint32(tableID))
	}
	for _, row := range in.scanAllRows(domain.StTableId) {
		if domain.TableId(row[0].Int.Uint64()) == tableID {
			oldRowID := domain.ComputeDataKey(domain.EncodeRow(row))
			in.deleteRow(domain.StTableId, oldRowID)
			newRow := domain.Row{domain.NewU32(uint32(tableID)), domain.NewString(newName), row[2]}
			if _, err := in.insertRowInternal(domain.StTableId, newRow); err != nil {
				return err
			}
			if shadow, ok := in.tx.getInsertTable(tableID); ok {
				shadow.schema.TableName = newName
			}
			return nil
		}
	}
	return domain.NewErrIdNotFound("table", uint32(tableID))
}

// createIndex inserts the st_indexes row (allocating index_id, enforcing name
// uniqueness explicitly since no system index backs index_name) and builds
// the index from both layers so it is authoritative immediately.
func (in *Inner) createIndex(def domain.IndexDef) (domain.IndexId, error) {
	if !in.tableExists(def.TableId) {
		return 0, domain.NewErrIdNotFound("table", uint32(def.TableId))
	}
	if _, ok := in.indexIdFromName(def.IndexName); ok {
		return 0, domain.NewErrUniqueConstraintViolation("index_name_idx", "st_indexes", "index_name", domain.NewString(def.IndexName))
	}
	row := domain.Row{
		domain.NewU32(0), domain.NewU32(uint32(def.TableId)), domain.NewU32(uint32(def.ColId)),
		domain.NewString(def.IndexName), domain.NewBool(def.IsUnique),
	}
	result, err := in.insertRow(domain.StIndexesId, row)
	if err != nil {
		return 0, err
	}
	indexID := domain.IndexId(result[0].Int.Uint64())
	schema := domain.IndexSchema{IndexId: indexID, TableId: def.TableId, ColId: def.ColId, IndexName: def.IndexName, IsUnique: def.IsUnique}
	in.createIndexInternal(schema)
	return indexID, nil
}

// createIndexInternal seeds a fresh index from both the committed rows and
// any rows already shadow-inserted this transaction, then attaches it to the
// shadow table only — the committed table is never touched before commit.
func (in *Inner) createIndexInternal(schema domain.IndexSchema) {
	committed, _ := in.committed.getTable(schema.TableId)
	shadow := in.tx.getOrCreateInsertTable(schema.TableId, committed)
	idx := newBTreeIndex(schema)
	if committed != nil {
		idx.buildFromRows(committed.rows, schema.ColId)
	}
	idx.buildFromRows(shadow.rows, schema.ColId)
	shadow.attachIndex(idx)
}

// dropIndex deletes the st_indexes row and removes the index from whichever
// layer (committed table or shadow insert-table) currently holds it.
func (in *Inner) dropIndex(indexID domain.IndexId) error {
	var target *domain.IndexSchema
	for _, row := range in.scanAllRows(domain.StIndexesId) {
		if domain.IndexId(row[0].Int.Uint64()) == indexID {
			target = &domain.IndexSchema{
				IndexId: indexID, TableId: domain.TableId(row[1].Int.Uint64()), ColId: domain.ColId(row[2].Int.Uint64()),
				IndexName: row[3].Str, IsUnique: row[4].Bool,
			}
			rowID := domain.ComputeDataKey(domain.EncodeRow(row))
			in.deleteRow(domain.StIndexesId, rowID)
			break
		}
	}
	if target == nil {
		return domain.NewErrIdNotFound("index", uint32(indexID))
	}
	if committed, ok := in.committed.getTable(target.TableId); ok {
		committed.detachIndex(target.ColId)
	}
	if shadow, ok := in.tx.getInsertTable(target.TableId); ok {
		shadow.detachIndex(target.ColId)
	}
	return nil
}

// createSequence validates bounds, inserts the st_sequence row (allocating
// sequence_id), and registers the live counter.
func (in *Inner) createSequence(def domain.SequenceDef) (domain.SequenceId, error) {
	increment := def.Increment
	if increment == nil {
		increment = big.NewInt(1)
	}
	start := def.Start
	if start == nil {
		start = big.NewInt(1)
	}
	min := def.MinValue
	if min == nil {
		min = big.NewInt(1)
	}
	max := def.MaxValue
	if max == nil {
		max = domain.MaxI128()
	}
	if err := validateSequenceBounds(increment, start, min, max); err != nil {
		return 0, err
	}
	if _, ok := in.sequenceIdFromName(def.SequenceName); ok {
		return 0, domain.NewErrSequenceExists(def.SequenceName)
	}

	allocated := big.NewInt(sequencePreallocationAmount)
	row := domain.Row{
		domain.NewU32(0), domain.NewString(def.SequenceName), domain.NewU32(uint32(def.TableId)), domain.NewU32(uint32(def.ColId)),
		domain.NewI128(increment), domain.NewI128(start), domain.NewI128(min), domain.NewI128(max), domain.NewI128(allocated),
	}
	result, err := in.insertRow(domain.StSequenceId, row)
	if err != nil {
		return 0, err
	}
	seqID := domain.SequenceId(result[0].Int.Uint64())
	schema := domain.SequenceSchema{
		SequenceId: seqID, SequenceName: def.SequenceName, TableId: def.TableId, ColId: def.ColId,
		Increment: increment, Start: start, MinValue: min, MaxValue: max, Allocated: allocated,
	}
	in.sequences.put(newSequence(schema))
	return seqID, nil
}

// dropSequence removes the st_sequence row and the live counter.
func (in *Inner) dropSequence(seqID domain.SequenceId) error {
	found := false
	for _, row := range in.scanAllRows(domain.StSequenceId) {
		if domain.SequenceId(row[0].Int.Uint64()) == seqID {
			rowID := domain.ComputeDataKey(domain.EncodeRow(row))
			in.deleteRow(domain.StSequenceId, rowID)
			found = true
			break
		}
	}
	if !found {
		return domain.NewErrSequenceNotFound(seqID)
	}
	in.sequences.remove(seqID)
	return nil
}

// getNextSequenceValue returns the next value, refilling st_sequence's
// allocated high-water mark (via delete+insert, so the bump is durable on
// commit) when the live counter is exhausted.
func (in *Inner) getNextSequenceValue(seqID domain.SequenceId) (*big.Int, error) {
	seq, ok := in.sequences.get(seqID)
	if !ok {
		return nil, domain.NewErrSequenceNotFound(seqID)
	}
	if v, ok := seq.genNextValue(); ok {
		return v, nil
	}

	newAllocated := seq.nthValue(sequenceRefillBatch)
	for _, row := range in.scanAllRows(domain.StSequenceId) {
		if domain.SequenceId(row[0].Int.Uint64()) != seqID {
			continue
		}
		oldRowID := domain.ComputeDataKey(domain.EncodeRow(row))
		in.deleteRow(domain.StSequenceId, oldRowID)
		newRow := append(domain.Row(nil), row...)
		newRow[8] = domain.NewI128(newAllocated)
		if _, err := in.insertRowInternal(domain.StSequenceId, newRow); err != nil {
			return nil, err
		}
		break
	}
	seq.setAllocation(newAllocated)

	if v, ok := seq.genNextValue(); ok {
		return v, nil
	}
	return nil, domain.NewErrSequenceUnableToAllocate(seqID)
}

// commit folds the active transaction into committed state, returning the
// write log (nil if there were no writes), and clears the transaction.
func (in *Inner) commit() *domain.Transaction {
	writeLog := in.committed.merge(in.tx)
	in.tx = nil
	return writeLog
}

// rollback discards the active transaction's overlay without touching
// committed state. Sequence allocation bumps are not reconciled (§ rollback
// gaps are accepted, per design).
func (in *Inner) rollback() {
	in.tx = nil
}
