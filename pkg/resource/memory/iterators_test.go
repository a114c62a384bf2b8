package memory

import (
	"testing"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
	"github.com/stretchr/testify/require"
)

func rid(s string) domain.RowId { return domain.DataKey{Kind: domain.DataKeyData, Data: s} }

func TestScanIter_SkipsCommittedRowsShadowedByTx(t *testing.T) {
	committed := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	committed.insert(rid("a"), domain.Row{domain.NewU32(1)})
	committed.insert(rid("b"), domain.Row{domain.NewU32(2)})

	tx := newTxState()
	tx.deleteTables[10] = map[domain.RowId]struct{}{rid("a"): {}}
	shadow := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	shadow.insert(rid("c"), domain.Row{domain.NewU32(3)})
	tx.insertTables[10] = shadow

	it := scanIter(committed, shadow, tx, 10)
	var ids []domain.RowId
	for {
		id, _, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	require.ElementsMatch(t, []domain.RowId{rid("b"), rid("c")}, ids)
}

func TestScanIter_CommittedOnlyNoTx(t *testing.T) {
	committed := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	committed.insert(rid("a"), domain.Row{domain.NewU32(1)})

	it := scanIter(committed, nil, nil, 10)
	_, row, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, domain.Row{domain.NewU32(1)}, row)
	_, _, ok = it.Next()
	require.False(t, ok)
}

func TestScanSeekIter_FiltersByEquality(t *testing.T) {
	committed := newTable(domain.RowType{domain.KindU32, domain.KindString}, simpleSchema())
	committed.insert(rid("a"), domain.Row{domain.NewU32(1), domain.NewString("x")})
	committed.insert(rid("b"), domain.Row{domain.NewU32(2), domain.NewString("y")})

	it := scanSeekIter(committed, nil, nil, 10, 1, domain.NewString("y"))
	_, row, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint32(2), uint32(row[0].Int.Uint64()))
	_, _, ok = it.Next()
	require.False(t, ok)
}

func TestIndexSeekIter_MergesShadowAndCommittedRespectingTombstones(t *testing.T) {
	committedTbl := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	committedTbl.attachIndex(newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "id_idx"}))
	committedTbl.insert(rid("a"), domain.Row{domain.NewU32(5)})
	committedTbl.insert(rid("b"), domain.Row{domain.NewU32(5)})

	tx := newTxState()
	tx.deleteTables[10] = map[domain.RowId]struct{}{rid("b"): {}}
	shadow := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	shadow.attachIndex(newBTreeIndex(domain.IndexSchema{IndexId: 1, ColId: 0, IndexName: "id_idx"}))
	shadow.insert(rid("c"), domain.Row{domain.NewU32(5)})
	tx.insertTables[10] = shadow

	it := indexSeekIter(committedTbl, shadow, tx, 10, 0, domain.NewU32(5))
	var ids []domain.RowId
	for {
		id, _, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	require.ElementsMatch(t, []domain.RowId{rid("a"), rid("c")}, ids)
}

func TestRangeScanIter_FiltersByBounds(t *testing.T) {
	committed := newTable(domain.RowType{domain.KindU32}, simpleSchema())
	committed.insert(rid("a"), domain.Row{domain.NewU32(5)})
	committed.insert(rid("b"), domain.Row{domain.NewU32(15)})
	committed.insert(rid("c"), domain.Row{domain.NewU32(25)})

	lo, hi := domain.NewU32(10), domain.NewU32(20)
	bounds := domain.Range{Min: &lo, Max: &hi, MinInclusive: true, MaxInclusive: true}

	it := rangeScanIter(committed, nil, nil, 10, 0, bounds.Contains)
	var got []uint32
	for {
		_, row, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, uint32(row[0].Int.Uint64()))
	}
	require.Equal(t, []uint32{15}, got)
}
