package memory

import "github.com/kasuganosora/memstore/pkg/resource/domain"

// committedState is the durable in-memory snapshot after the last commit.
// It is read-only to readers; the only mutator is merge.
type committedState struct {
	tables map[domain.TableId]*table
}

func newCommittedState() *committedState {
	return &committedState{tables: make(map[domain.TableId]*table)}
}

func (c *committedState) getTable(id domain.TableId) (*table, bool) {
	t, ok := c.tables[id]
	return t, ok
}

func (c *committedState) getOrCreateTable(id domain.TableId, rowType domain.RowType, schema *domain.TableSchema) *table {
	if t, ok := c.tables[id]; ok {
		return t
	}
	t := newTable(rowType, schema)
	c.tables[id] = t
	return t
}

// indexSeek returns the RowIds matching value on col in table id, if an index exists there.
func (c *committedState) indexSeek(id domain.TableId, col domain.ColId, value domain.Value) ([]domain.RowId, bool) {
	t, ok := c.tables[id]
	if !ok {
		return nil, false
	}
	idx, ok := t.indexes[col]
	if !ok {
		return nil, false
	}
	return idx.seek(value), true
}

// merge folds a transaction's shadow state into committed state, producing the
// write log. Tables dropped within the same transaction in which they were
// created leave tombstones with no corresponding committed table; those are
// silently skipped since they never committed.
func (c *committedState) merge(tx *txState) *domain.Transaction {
	writeLog := &domain.Transaction{}

	for id, shadow := range tx.insertTables {
		committed, existed := c.tables[id]
		if !existed {
			committed = c.getOrCreateTable(id, shadow.rowType, shadow.schema)
		}
		for _, entry := range shadow.scanRows() {
			committed.insert(entry.id, entry.row)
			writeLog.Writes = append(writeLog.Writes, domain.Write{
				Op: domain.OpInsert, SetId: id, DataKey: entry.id,
			})
		}
		for col, idx := range shadow.indexes {
			if _, ok := committed.indexes[col]; !ok {
				fresh := newBTreeIndex(idx.schema)
				fresh.buildFromRows(committed.rows, col)
				committed.indexes[col] = fresh
			}
		}
	}

	for id, tombstones := range tx.deleteTables {
		committed, ok := c.tables[id]
		if !ok {
			continue
		}
		for rowID := range tombstones {
			if !committed.contains(rowID) {
				continue
			}
			committed.delete(rowID)
			writeLog.Writes = append(writeLog.Writes, domain.Write{
				Op: domain.OpDelete, SetId: id, DataKey: rowID,
			})
		}
	}

	for id := range tx.droppedTables {
		delete(c.tables, id)
	}

	if len(writeLog.Writes) == 0 {
		return nil
	}
	return writeLog
}
