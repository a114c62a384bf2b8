package memory

import (
	"testing"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
	"github.com/stretchr/testify/require"
)

func simpleSchema() *domain.TableSchema {
	return &domain.TableSchema{
		TableId:   10,
		TableName: "Widgets",
		Columns: []domain.ColumnSchema{
			{TableId: 10, ColId: 0, ColName: "id", ColType: domain.KindU32},
			{TableId: 10, ColId: 1, ColName: "name", ColType: domain.KindString},
		},
	}
}

func TestTable_InsertMaintainsIndexes(t *testing.T) {
	tbl := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	tbl.attachIndex(newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "id_idx", IsUnique: true}))

	id := domain.DataKey{Kind: domain.DataKeyData, Data: "row1"}
	row := domain.Row{domain.NewU32(7), domain.NewString("gizmo")}
	tbl.insert(id, row)

	got, ok := tbl.getRow(id)
	require.True(t, ok)
	require.Equal(t, row, got)
	require.True(t, tbl.contains(id))
	require.Len(t, tbl.indexes[0].seek(domain.NewU32(7)), 1)
}

func TestTable_DeleteRemovesFromRowsAndIndexes(t *testing.T) {
	tbl := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	tbl.attachIndex(newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "id_idx"}))

	id := domain.DataKey{Kind: domain.DataKeyData, Data: "row1"}
	tbl.insert(id, domain.Row{domain.NewU32(7), domain.NewString("gizmo")})
	tbl.delete(id)

	require.False(t, tbl.contains(id))
	require.Empty(t, tbl.indexes[0].seek(domain.NewU32(7)))

	// deleting an absent row must not panic
	tbl.delete(id)
}

func TestTable_ScanRowsOrderedByRowId(t *testing.T) {
	tbl := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	idA := domain.DataKey{Kind: domain.DataKeyData, Data: "a"}
	idB := domain.DataKey{Kind: domain.DataKeyData, Data: "b"}
	tbl.insert(idB, domain.Row{domain.NewU32(2), domain.NewString("b")})
	tbl.insert(idA, domain.Row{domain.NewU32(1), domain.NewString("a")})

	entries := tbl.scanRows()
	require.Len(t, entries, 2)
	require.Equal(t, idA, entries[0].id)
	require.Equal(t, idB, entries[1].id)
}

func TestTable_AttachAndDetachIndex(t *testing.T) {
	tbl := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	schema := domain.IndexSchema{IndexId: 1, ColId: 1, IndexName: "name_idx"}
	tbl.attachIndex(newBTreeIndex(schema))
	require.Contains(t, tbl.indexes, domain.ColId(1))
	require.Len(t, tbl.schema.Indexes, 1)

	require.True(t, tbl.detachIndex(1))
	require.NotContains(t, tbl.indexes, domain.ColId(1))
	require.Empty(t, tbl.schema.Indexes)
	require.False(t, tbl.detachIndex(1), "detaching twice reports absence")
}

func TestTable_CloneEmptyCopiesShellsNotRows(t *testing.T) {
	tbl := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	tbl.attachIndex(newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "id_idx"}))
	tbl.insert(domain.DataKey{Kind: domain.DataKeyData, Data: "a"}, domain.Row{domain.NewU32(1), domain.NewString("a")})

	clone := tbl.cloneEmpty()
	require.Empty(t, clone.rows)
	require.Contains(t, clone.indexes, domain.ColId(0))
	require.Empty(t, clone.indexes[0].seek(domain.NewU32(1)))

	// mutating the clone's schema must not alias the original's slice
	clone.schema.Columns[0].ColName = "renamed"
	require.Equal(t, "id", tbl.schema.Columns[0].ColName)
}
