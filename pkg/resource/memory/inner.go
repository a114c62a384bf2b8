package memory

import (
	"log"
	"math/big"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// Inner orchestrates the committed state, the active transaction overlay, the
// live sequence cache, and the blob side-table. It exposes the transactional
// API; Locking is the only thing allowed to construct or hold one directly.
type Inner struct {
	committed *committedState
	tx        *txState
	sequences *sequencesState
	blobs     *blobStore
	logger    *log.Logger
}

func newInner(logger *log.Logger) *Inner {
	if logger == nil {
		logger = log.Default()
	}
	return &Inner{
		committed: newCommittedState(),
		sequences: newSequencesState(),
		blobs:     newBlobStore(),
		logger:    logger,
	}
}

// tableExists reports whether id names a table, in either the shadow or committed layer.
func (in *Inner) tableExists(id domain.TableId) bool {
	if in.tx != nil {
		if _, ok := in.tx.insertTables[id]; ok {
			return true
		}
	}
	_, ok := in.committed.getTable(id)
	return ok
}

// containsRow reports liveness of (table, row): not tombstoned, and either
// shadow-inserted or present in committed state.
func (in *Inner) containsRow(id domain.TableId, rowID domain.RowId) bool {
	op := in.tx.getRowOp(id, rowID)
	if op == rowDelete {
		return false
	}
	if op == rowInsert {
		return true
	}
	committed, ok := in.committed.getTable(id)
	return ok && committed.contains(rowID)
}

// scanRows merges committed (minus shadowed rows) with shadow inserts, in the
// order described by the ScanIter state machine.
func (in *Inner) scanRows(id domain.TableId) *RowIter {
	committed, _ := in.committed.getTable(id)
	var shadow *table
	if in.tx != nil {
		shadow, _ = in.tx.getInsertTable(id)
	}
	return scanIter(committed, shadow, in.tx, id)
}

// resolveDataKey returns the canonical bytes backing a DataKey.
func (in *Inner) resolveDataKey(key domain.DataKey) ([]byte, bool) {
	return resolveDataKey(key, in.blobs)
}

// rowTypeForTable derives the RowType by projecting a table's column kinds.
func (in *Inner) rowTypeForTable(id domain.TableId) (domain.RowType, error) {
	if in.tx != nil {
		if shadow, ok := in.tx.getInsertTable(id); ok && shadow.rowType != nil {
			return shadow.rowType, nil
		}
	}
	if committed, ok := in.committed.getTable(id); ok && committed.rowType != nil {
		return committed.rowType, nil
	}
	schema, err := in.schemaForTable(id)
	if err != nil {
		return nil, err
	}
	rt := make(domain.RowType, len(schema.Columns))
	for i, c := range schema.Columns {
		rt[i] = c.ColType
	}
	return rt, nil
}

// schemaForTable prefers the shadow table's cached schema, then the committed
// table's, falling back to reconstructing it from the system catalog.
func (in *Inner) schemaForTable(id domain.TableId) (*domain.TableSchema, error) {
	if in.tx != nil {
		if shadow, ok := in.tx.getInsertTable(id); ok {
			return shadow.schema, nil
		}
	}
	if committed, ok := in.committed.getTable(id); ok {
		return committed.schema, nil
	}
	return in.reconstructSchema(id)
}

func sortColumnsByColId(cols []domain.ColumnSchema) []domain.ColumnSchema {
	out := append([]domain.ColumnSchema(nil), cols...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ColId < out[j-1].ColId; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// reconstructSchema rebuilds a TableSchema by seeking the system tables
// directly; used only when neither the shadow nor the committed layer has
// already materialized a Table object for id.
func (in *Inner) reconstructSchema(id domain.TableId) (*domain.TableSchema, error) {
	tableRows := in.seekRows(domain.StTableId, 0, domain.NewU32(uint32(id)))
	if len(tableRows) == 0 {
		return nil, domain.NewErrIdNotFound("table", uint32(id))
	}
	tableName := tableRows[0][1].Str

	var cols []domain.ColumnSchema
	for _, row := range in.scanAllRows(domain.StColumnsId) {
		if uint32(row[0].Int.Int64()) != uint32(id) {
			continue
		}
		cols = append(cols, domain.ColumnSchema{
			TableId:   id,
			ColId:     domain.ColId(row[1].Int.Uint64()),
			ColType:   domain.ValueKind(row[2].Int.Uint64()),
			ColName:   row[3].Str,
			IsAutoInc: row[4].Bool,
		})
	}
	cols = sortColumnsByColId(cols)

	var idxs []domain.IndexSchema
	for _, row := range in.scanAllRows(domain.StIndexesId) {
		if uint32(row[1].Int.Int64()) != uint32(id) {
			continue
		}
		idxs = append(idxs, domain.IndexSchema{
			IndexId:   domain.IndexId(row[0].Int.Uint64()),
			TableId:   id,
			ColId:     domain.ColId(row[2].Int.Uint64()),
			IndexName: row[3].Str,
			IsUnique:  row[4].Bool,
		})
	}

	return &domain.TableSchema{TableId: id, TableName: tableName, Columns: cols, Indexes: idxs}, nil
}

// scanAllRows returns every live row of a table as plain domain.Row values.
func (in *Inner) scanAllRows(id domain.TableId) []domain.Row {
	it := in.scanRows(id)
	var out []domain.Row
	for {
		_, row, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, row)
	}
	return out
}

// seekRows returns every live row of table id whose column col equals value,
// using an index when one is available on col.
func (in *Inner) seekRows(id domain.TableId, col domain.ColId, value domain.Value) []domain.Row {
	committed, _ := in.committed.getTable(id)
	var shadow *table
	if in.tx != nil {
		shadow, _ = in.tx.getInsertTable(id)
	}
	hasIndex := (shadow != nil && shadow.indexes[col] != nil) || (committed != nil && committed.indexes[col] != nil)

	var it *RowIter
	if hasIndex {
		it = indexSeekIter(committed, shadow, in.tx, id, col, value)
	} else {
		it = scanSeekIter(committed, shadow, in.tx, id, col, value)
	}
	var out []domain.Row
	for {
		_, row, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, row)
	}
	return out
}

// tableIdFromName looks up st_table by table_name.
func (in *Inner) tableIdFromName(name string) (domain.TableId, bool) {
	rows := in.seekRows(domain.StTableId, 1, domain.NewString(name))
	if len(rows) == 0 {
		return 0, false
	}
	return domain.TableId(rows[0][0].Int.Uint64()), true
}

// tableNameFromId looks up st_table by table_id.
func (in *Inner) tableNameFromId(id domain.TableId) (string, bool) {
	rows := in.seekRows(domain.StTableId, 0, domain.NewU32(uint32(id)))
	if len(rows) == 0 {
		return "", false
	}
	return rows[0][1].Str, true
}

// sequenceIdFromName looks up st_sequence by sequence_name.
func (in *Inner) sequenceIdFromName(name string) (domain.SequenceId, bool) {
	rows := in.seekRows(domain.StSequenceId, 1, domain.NewString(name))
	if len(rows) == 0 {
		return 0, false
	}
	return domain.SequenceId(rows[0][0].Int.Uint64()), true
}

// indexIdFromName looks up st_indexes by index_name.
func (in *Inner) indexIdFromName(name string) (domain.IndexId, bool) {
	rows := in.seekRows(domain.StIndexesId, 3, domain.NewString(name))
	if len(rows) == 0 {
		return 0, false
	}
	return domain.IndexId(rows[0][0].Int.Uint64()), true
}

func bigFromRow(v domain.Value) *big.Int {
	if v.Int == nil {
		return big.NewInt(0)
	}
	return v.Int
}
