package memory

import (
	"fmt"
	"log"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// Locking serializes access to a single Inner behind one mutex: at most one
// writer transaction is active at a time. The mutex is held from BeginMutTx
// until CommitMutTx or RollbackMutTx, so a leaked transaction (BeginMutTx
// without a matching Commit/Rollback) blocks the next BeginMutTx; BeginMutTx
// panics if it acquires the mutex and finds Tx State still set.
type Locking struct {
	mu     sync.Mutex
	inner  *Inner
	id     uuid.UUID
	logger *log.Logger
}

// NewLocking constructs and bootstraps a fresh datastore instance.
func NewLocking(logger *log.Logger) *Locking {
	if logger == nil {
		logger = log.Default()
	}
	l := &Locking{inner: newInner(logger), id: uuid.New(), logger: logger}
	l.inner.bootstrap()
	logger.Printf("memstore[%s]: instance ready", l.id)
	return l
}

// MutTxId is an opaque handle to an open read-write transaction.
type MutTxId struct {
	locking *Locking
}

// BeginMutTx acquires the single-writer lock and opens a fresh Tx State.
func (l *Locking) BeginMutTx() MutTxId {
	l.mu.Lock()
	if l.inner.tx != nil {
		panic("memstore: BeginMutTx called with a transaction already open")
	}
	l.inner.tx = newTxState()
	l.logger.Printf("memstore[%s]: begin_mut_tx", l.id)
	return MutTxId{locking: l}
}

// CommitMutTx folds Tx State into Committed State and releases the lock,
// returning the write log (nil if nothing was written).
func (l *Locking) CommitMutTx(tx MutTxId) *domain.Transaction {
	writeLog := l.inner.commit()
	l.logger.Printf("memstore[%s]: commit_mut_tx (%d writes)", l.id, writeLogLen(writeLog))
	l.mu.Unlock()
	return writeLog
}

// RollbackMutTx discards Tx State and releases the lock. Committed State is
// untouched; any sequence allocation bump from this transaction is kept
// (documented gap, see design notes on sequence rollback).
func (l *Locking) RollbackMutTx(tx MutTxId) {
	l.inner.rollback()
	l.logger.Printf("memstore[%s]: rollback_mut_tx", l.id)
	l.mu.Unlock()
}

func writeLogLen(tx *domain.Transaction) int {
	if tx == nil {
		return 0
	}
	return len(tx.Writes)
}

// BeginTx opens a read-only transaction. It reuses the mutation path (a
// txState with no writes behaves as a transparent window onto Committed
// State) and must be released with ReleaseTx.
func (l *Locking) BeginTx() MutTxId {
	return l.BeginMutTx()
}

// ReleaseTx releases a read-only transaction opened with BeginTx, discarding
// any Tx State exactly like RollbackMutTx.
func (l *Locking) ReleaseTx(tx MutTxId) {
	l.RollbackMutTx(tx)
}

// CreateTableMutTx creates a table, its columns, its auto-inc sequences, and
// its requested indexes.
func (l *Locking) CreateTableMutTx(tx MutTxId, def domain.TableDef) (domain.TableId, error) {
	return l.inner.createTable(def)
}

// DropTableMutTx drops a table's catalog rows, indexes, and sequences,
// scheduling the table's removal from Committed State at commit time.
func (l *Locking) DropTableMutTx(tx MutTxId, id domain.TableId) error {
	return l.inner.dropTable(id)
}

// RenameTableMutTx replaces a table's st_table row with a new name.
func (l *Locking) RenameTableMutTx(tx MutTxId, id domain.TableId, newName string) error {
	return l.inner.renameTable(id, newName)
}

// TableIdFromName resolves a table name to its id via st_table.
func (l *Locking) TableIdFromName(tx MutTxId, name string) (domain.TableId, bool) {
	return l.inner.tableIdFromName(name)
}

// TableNameFromId resolves a table id to its name via st_table.
func (l *Locking) TableNameFromId(tx MutTxId, id domain.TableId) (string, bool) {
	return l.inner.tableNameFromId(id)
}

// RowTypeForTable returns a table's column kinds in column order.
func (l *Locking) RowTypeForTable(tx MutTxId, id domain.TableId) (domain.RowType, error) {
	return l.inner.rowTypeForTable(id)
}

// SchemaForTable returns a table's full schema, including its indexes.
func (l *Locking) SchemaForTable(tx MutTxId, id domain.TableId) (*domain.TableSchema, error) {
	return l.inner.schemaForTable(id)
}

// CreateIndexMutTx builds an index from both the shadow and committed rows
// for def.TableId/def.ColId, so it is authoritative immediately.
func (l *Locking) CreateIndexMutTx(tx MutTxId, def domain.IndexDef) (domain.IndexId, error) {
	return l.inner.createIndex(def)
}

// DropIndexMutTx removes an index from the st_indexes catalog and whichever
// table layer currently holds it.
func (l *Locking) DropIndexMutTx(tx MutTxId, id domain.IndexId) error {
	return l.inner.dropIndex(id)
}

// CreateSequenceMutTx validates bounds and registers a new monotonic counter.
func (l *Locking) CreateSequenceMutTx(tx MutTxId, def domain.SequenceDef) (domain.SequenceId, error) {
	return l.inner.createSequence(def)
}

// DropSequenceMutTx removes a sequence's catalog row and live counter.
func (l *Locking) DropSequenceMutTx(tx MutTxId, id domain.SequenceId) error {
	return l.inner.dropSequence(id)
}

// GetNextSequenceValueMutTx returns the next value, refilling st_sequence's
// allocated high-water mark if the in-memory counter is exhausted.
func (l *Locking) GetNextSequenceValueMutTx(tx MutTxId, id domain.SequenceId) (*big.Int, error) {
	return l.inner.getNextSequenceValue(id)
}

// InsertRowMutTx substitutes zero-valued auto-inc columns, runs the unique
// prechecks, and shadow-inserts the row.
func (l *Locking) InsertRowMutTx(tx MutTxId, tableID domain.TableId, row domain.Row) (domain.Row, error) {
	return l.inner.insertRow(tableID, row)
}

// DeleteRowMutTx tombstones a single row by its content-addressed id.
func (l *Locking) DeleteRowMutTx(tx MutTxId, tableID domain.TableId, rowID domain.RowId) bool {
	return l.inner.deleteRow(tableID, rowID)
}

// DeleteRowsInMutTx tombstones every row in rows, recomputing each RowId, and
// reports how many were live.
func (l *Locking) DeleteRowsInMutTx(tx MutTxId, tableID domain.TableId, rows []domain.Row) int {
	return l.inner.deleteRowsIn(tableID, rows)
}

// ScanMutTx returns a single-pass iterator over every live row of a table.
func (l *Locking) ScanMutTx(tx MutTxId, tableID domain.TableId) (*RowIter, error) {
	return l.inner.scan(tableID)
}

// RangeScanMutTx returns a single-pass iterator over rows whose column col
// falls within bounds.
func (l *Locking) RangeScanMutTx(tx MutTxId, tableID domain.TableId, col domain.ColId, bounds domain.Range) (*RowIter, error) {
	return l.inner.rangeScan(tableID, col, bounds)
}

// SeekMutTx returns a single-pass iterator over rows whose column col equals value.
func (l *Locking) SeekMutTx(tx MutTxId, tableID domain.TableId, col domain.ColId, value domain.Value) (*RowIter, error) {
	return l.inner.seek(tableID, col, value)
}

// GetRowMutTx returns a single row by id, preferring the shadow overlay.
func (l *Locking) GetRowMutTx(tx MutTxId, tableID domain.TableId, rowID domain.RowId) (domain.Row, bool, error) {
	return l.inner.getRow(tableID, rowID)
}

// ResolveDataKeyMutTx returns the canonical encoded bytes backing a RowId,
// following the blob side-table for hashed keys.
func (l *Locking) ResolveDataKeyMutTx(tx MutTxId, key domain.DataKey) ([]byte, bool) {
	return l.inner.resolveDataKey(key)
}

// String identifies this instance in logs.
func (l *Locking) String() string {
	return fmt.Sprintf("memstore[%s]", l.id)
}
