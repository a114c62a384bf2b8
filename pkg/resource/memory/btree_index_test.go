package memory

import (
	"testing"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
	"github.com/stretchr/testify/require"
)

func uniqueIndex() *btreeIndex {
	return newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "u_idx", IsUnique: true})
}

func nonUniqueIndex() *btreeIndex {
	return newBTreeIndex(domain.IndexSchema{IndexId: 2, ColId: 0, IndexName: "n_idx", IsUnique: false})
}

func TestBTreeIndex_SeekReturnsInsertedRows(t *testing.T) {
	idx := nonUniqueIndex()
	r1 := domain.DataKey{Kind: domain.DataKeyData, Data: "r1"}
	r2 := domain.DataKey{Kind: domain.DataKeyData, Data: "r2"}
	idx.insert(domain.NewU32(5), r1)
	idx.insert(domain.NewU32(5), r2)

	got := idx.seek(domain.NewU32(5))
	require.ElementsMatch(t, []domain.RowId{r1, r2}, got)
	require.Empty(t, idx.seek(domain.NewU32(6)))
}

func TestBTreeIndex_UniqueConstraintViolation(t *testing.T) {
	idx := uniqueIndex()
	r1 := domain.DataKey{Kind: domain.DataKeyData, Data: "r1"}
	r2 := domain.DataKey{Kind: domain.DataKeyData, Data: "r2"}
	idx.insert(domain.NewString("Alice"), r1)

	require.True(t, idx.violatesUniqueConstraint(domain.NewString("Alice"), r2))
	require.False(t, idx.violatesUniqueConstraint(domain.NewString("Alice"), r1), "re-inserting under the same RowId must not violate")
	require.False(t, idx.violatesUniqueConstraint(domain.NewString("Bob"), r2))
}

func TestBTreeIndex_DeleteRemovesEntry(t *testing.T) {
	idx := nonUniqueIndex()
	r1 := domain.DataKey{Kind: domain.DataKeyData, Data: "r1"}
	idx.insert(domain.NewU32(1), r1)
	idx.delete(domain.NewU32(1), r1)
	require.Empty(t, idx.seek(domain.NewU32(1)))
}

func TestBTreeIndex_RangeValuesOrdersAscending(t *testing.T) {
	idx := nonUniqueIndex()
	r1 := domain.DataKey{Kind: domain.DataKeyData, Data: "r1"}
	r2 := domain.DataKey{Kind: domain.DataKeyData, Data: "r2"}
	r3 := domain.DataKey{Kind: domain.DataKeyData, Data: "r3"}
	idx.insert(domain.NewU32(30), r3)
	idx.insert(domain.NewU32(10), r1)
	idx.insert(domain.NewU32(20), r2)

	got := idx.rangeValues(func(domain.Value) bool { return true })
	require.Equal(t, []domain.RowId{r1, r2, r3}, got)
}

func TestBTreeIndex_BuildFromRows(t *testing.T) {
	idx := uniqueIndex()
	rows := map[domain.RowId]domain.Row{
		{Kind: domain.DataKeyData, Data: "a"}: {domain.NewU32(1)},
		{Kind: domain.DataKeyData, Data: "b"}: {domain.NewU32(2)},
	}
	idx.buildFromRows(rows, 0)
	require.Len(t, idx.seek(domain.NewU32(1)), 1)
	require.Len(t, idx.seek(domain.NewU32(2)), 1)
}

func TestBTreeIndex_EmptyCloneSharesSchemaNotData(t *testing.T) {
	idx := uniqueIndex()
	idx.insert(domain.NewU32(1), domain.DataKey{Kind: domain.DataKeyData, Data: "a"})
	clone := idx.emptyClone()
	require.Equal(t, idx.schema, clone.schema)
	require.Empty(t, clone.seek(domain.NewU32(1)))
}
