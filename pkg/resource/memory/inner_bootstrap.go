package memory

import (
	"math/big"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// bootstrap seeds the four system catalog tables directly into committed
// state, outside of any transaction, then builds the live sequence and index
// caches. The catalog must be self-consistent before any user transaction
// begins, so this path never goes through the ordinary insert_row pipeline.
func (in *Inner) bootstrap() {
	in.seedSystemTable(stTableSchema(), stTableRows())
	in.seedSystemTable(stColumnsSchema(), stColumnsRows())
	in.seedSystemTable(stSequenceSchema(), stSequenceRows())
	in.seedSystemTable(stIndexesSchema(), stIndexesRows())

	in.buildSequenceState()

	in.logger.Printf("memstore: bootstrap complete (4 tables, 4 indexes, 3 sequences)")
}

func rowTypeOf(schema *domain.TableSchema) domain.RowType {
	rt := make(domain.RowType, len(schema.Columns))
	for i, c := range schema.Columns {
		rt[i] = c.ColType
	}
	return rt
}

// seedSystemTable materializes one system table's committed Table, its
// indexes, and its rows, computing each row's content-addressed RowId exactly
// as the ordinary insert pipeline would.
func (in *Inner) seedSystemTable(schema *domain.TableSchema, rows []domain.Row) {
	t := newTable(rowTypeOf(schema), schema)
	for _, is := range schema.Indexes {
		t.indexes[is.ColId] = newBTreeIndex(is)
	}
	for _, row := range rows {
		encoded := domain.EncodeRow(row)
		rowID := domain.ComputeDataKey(encoded)
		if rowID.Kind == domain.DataKeyHash {
			in.blobs.put(rowID, encoded)
		}
		t.insert(rowID, row)
	}
	in.committed.tables[schema.TableId] = t
}

// buildSequenceState populates the live SequenceId -> sequence cache by
// reading the bootstrapped st_sequence rows.
func (in *Inner) buildSequenceState() {
	for _, row := range in.scanAllRows(domain.StSequenceId) {
		schema := domain.SequenceSchema{
			SequenceId:   domain.SequenceId(row[0].Int.Uint64()),
			SequenceName: row[1].Str,
			TableId:      domain.TableId(row[2].Int.Uint64()),
			ColId:        domain.ColId(row[3].Int.Uint64()),
			Increment:    row[4].Int,
			Start:        row[5].Int,
			MinValue:     row[6].Int,
			MaxValue:     row[7].Int,
			Allocated:    row[8].Int,
		}
		in.sequences.put(newSequence(schema))
	}
}

func colTypeVal(kind domain.ValueKind) domain.Value { return domain.NewU8(uint8(kind)) }

func stTableSchema() *domain.TableSchema {
	return &domain.TableSchema{
		TableId:   domain.StTableId,
		TableName: "st_table",
		Columns: []domain.ColumnSchema{
			{TableId: domain.StTableId, ColId: 0, ColName: "table_id", ColType: domain.KindU32, IsAutoInc: true},
			{TableId: domain.StTableId, ColId: 1, ColName: "table_name", ColType: domain.KindString},
			{TableId: domain.StTableId, ColId: 2, ColName: "is_system_table", ColType: domain.KindBool},
		},
		Indexes: []domain.IndexSchema{
			{IndexId: 0, TableId: domain.StTableId, ColId: 0, IndexName: "table_id_idx", IsUnique: true},
			{IndexId: 3, TableId: domain.StTableId, ColId: 1, IndexName: "table_name_idx", IsUnique: true},
		},
	}
}

func stTableRows() []domain.Row {
	return []domain.Row{
		{domain.NewU32(0), domain.NewString("st_table"), domain.NewBool(true)},
		{domain.NewU32(1), domain.NewString("st_columns"), domain.NewBool(true)},
		{domain.NewU32(2), domain.NewString("st_sequence"), domain.NewBool(true)},
		{domain.NewU32(3), domain.NewString("st_indexes"), domain.NewBool(true)},
	}
}

func stColumnsSchema() *domain.TableSchema {
	return &domain.TableSchema{
		TableId:   domain.StColumnsId,
		TableName: "st_columns",
		Columns: []domain.ColumnSchema{
			{TableId: domain.StColumnsId, ColId: 0, ColName: "table_id", ColType: domain.KindU32},
			{TableId: domain.StColumnsId, ColId: 1, ColName: "col_id", ColType: domain.KindU32},
			{TableId: domain.StColumnsId, ColId: 2, ColName: "col_type", ColType: domain.KindU8},
			{TableId: domain.StColumnsId, ColId: 3, ColName: "col_name", ColType: domain.KindString},
			{TableId: domain.StColumnsId, ColId: 4, ColName: "is_autoinc", ColType: domain.KindBool},
		},
	}
}

func stColumnsRows() []domain.Row {
	col := func(tableID uint32, colID uint32, kind domain.ValueKind, name string, autoinc bool) domain.Row {
		return domain.Row{domain.NewU32(tableID), domain.NewU32(colID), colTypeVal(kind), domain.NewString(name), domain.NewBool(autoinc)}
	}
	var rows []domain.Row
	rows = append(rows,
		col(0, 0, domain.KindU32, "table_id", true),
		col(0, 1, domain.KindString, "table_name", false),
		col(0, 2, domain.KindBool, "is_system_table", false),
	)
	rows = append(rows,
		col(1, 0, domain.KindU32, "table_id", false),
		col(1, 1, domain.KindU32, "col_id", false),
		col(1, 2, domain.KindU8, "col_type", false),
		col(1, 3, domain.KindString, "col_name", false),
		col(1, 4, domain.KindBool, "is_autoinc", false),
	)
	rows = append(rows,
		col(2, 0, domain.KindU32, "sequence_id", true),
		col(2, 1, domain.KindString, "sequence_name", false),
		col(2, 2, domain.KindU32, "table_id", false),
		col(2, 3, domain.KindU32, "col_id", false),
		col(2, 4, domain.KindI128, "increment", false),
		col(2, 5, domain.KindI128, "start", false),
		col(2, 6, domain.KindI128, "min_value", false),
		col(2, 7, domain.KindI128, "max_value", false),
		col(2, 8, domain.KindI128, "allocated", false),
	)
	rows = append(rows,
		col(3, 0, domain.KindU32, "index_id", true),
		col(3, 1, domain.KindU32, "table_id", false),
		col(3, 2, domain.KindU32, "col_id", false),
		col(3, 3, domain.KindString, "index_name", false),
		col(3, 4, domain.KindBool, "is_unique", false),
	)
	return rows
}

func stSequenceSchema() *domain.TableSchema {
	return &domain.TableSchema{
		TableId:   domain.StSequenceId,
		TableName: "st_sequence",
		Columns: []domain.ColumnSchema{
			{TableId: domain.StSequenceId, ColId: 0, ColName: "sequence_id", ColType: domain.KindU32, IsAutoInc: true},
			{TableId: domain.StSequenceId, ColId: 1, ColName: "sequence_name", ColType: domain.KindString},
			{TableId: domain.StSequenceId, ColId: 2, ColName: "table_id", ColType: domain.KindU32},
			{TableId: domain.StSequenceId, ColId: 3, ColName: "col_id", ColType: domain.KindU32},
			{TableId: domain.StSequenceId, ColId: 4, ColName: "increment", ColType: domain.KindI128},
			{TableId: domain.StSequenceId, ColId: 5, ColName: "start", ColType: domain.KindI128},
			{TableId: domain.StSequenceId, ColId: 6, ColName: "min_value", ColType: domain.KindI128},
			{TableId: domain.StSequenceId, ColId: 7, ColName: "max_value", ColType: domain.KindI128},
			{TableId: domain.StSequenceId, ColId: 8, ColName: "allocated", ColType: domain.KindI128},
		},
		Indexes: []domain.IndexSchema{
			{IndexId: 2, TableId: domain.StSequenceId, ColId: 0, IndexName: "sequences_id_idx", IsUnique: true},
		},
	}
}

func stSequenceRows() []domain.Row {
	mk := func(id uint32, name string, tableID, colID uint32, increment, start, min, max, allocated int64) domain.Row {
		return domain.Row{
			domain.NewU32(id), domain.NewString(name), domain.NewU32(tableID), domain.NewU32(colID),
			domain.NewI128(big.NewInt(increment)), domain.NewI128(big.NewInt(start)),
			domain.NewI128(big.NewInt(min)), domain.NewI128(big.NewInt(max)),
			domain.NewI128(big.NewInt(allocated)),
		}
	}
	return []domain.Row{
		mk(0, "table_id_seq", 0, 0, 1, 4, 1, 4294967295, sequencePreallocationAmount),
		mk(1, "sequence_id_seq", 2, 0, 1, 3, 1, 4294967295, sequencePreallocationAmount),
		mk(2, "index_id_seq", 3, 0, 1, 4, 1, 4294967295, sequencePreallocationAmount),
	}
}

func stIndexesSchema() *domain.TableSchema {
	return &domain.TableSchema{
		TableId:   domain.StIndexesId,
		TableName: "st_indexes",
		Columns: []domain.ColumnSchema{
			{TableId: domain.StIndexesId, ColId: 0, ColName: "index_id", ColType: domain.KindU32, IsAutoInc: true},
			{TableId: domain.StIndexesId, ColId: 1, ColName: "table_id", ColType: domain.KindU32},
			{TableId: domain.StIndexesId, ColId: 2, ColName: "col_id", ColType: domain.KindU32},
			{TableId: domain.StIndexesId, ColId: 3, ColName: "index_name", ColType: domain.KindString},
			{TableId: domain.StIndexesId, ColId: 4, ColName: "is_unique", ColType: domain.KindBool},
		},
		Indexes: []domain.IndexSchema{
			{IndexId: 1, TableId: domain.StIndexesId, ColId: 0, IndexName: "index_id_idx", IsUnique: true},
		},
	}
}

func stIndexesRows() []domain.Row {
	mk := func(id uint32, tableID, colID uint32, name string, unique bool) domain.Row {
		return domain.Row{domain.NewU32(id), domain.NewU32(tableID), domain.NewU32(colID), domain.NewString(name), domain.NewBool(unique)}
	}
	return []domain.Row{
		mk(0, 0, 0, "table_id_idx", true),
		mk(1, 3, 0, "index_id_idx", true),
		mk(2, 2, 0, "sequences_id_idx", true),
		mk(3, 0, 1, "table_name_idx", true),
	}
}
