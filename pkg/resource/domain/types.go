package domain

import "math/big"

// TableId 表标识符
type TableId uint32

// ColId 列标识符
type ColId uint32

// IndexId 索引标识符
type IndexId uint32

// SequenceId 序列标识符
type SequenceId uint32

// Reserved system table ids. Never reused by CreateTable.
const (
	StTableId     TableId = 0
	StColumnsId   TableId = 1
	StSequenceId  TableId = 2
	StIndexesId   TableId = 3
)

// ValueKind 标量值的种类
type ValueKind uint8

const (
	KindBool ValueKind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindI128
	KindU128
	KindF32
	KindF64
	KindString
	KindBytes
)

// Value 单个定长/变长标量值，Row 的元素类型
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   *big.Int // backs every integer Kind (I8..U128)
	Float float64  // backs F32/F64
	Str   string
	Bin   []byte
}

func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func newInt(kind ValueKind, v int64) Value {
	return Value{Kind: kind, Int: big.NewInt(v)}
}

func NewI8(v int8) Value   { return newInt(KindI8, int64(v)) }
func NewU8(v uint8) Value  { return newInt(KindU8, int64(v)) }
func NewI16(v int16) Value { return newInt(KindI16, int64(v)) }
func NewU16(v uint16) Value { return newInt(KindU16, int64(v)) }
func NewI32(v int32) Value { return newInt(KindI32, int64(v)) }
func NewU32(v uint32) Value { return newInt(KindU32, int64(v)) }
func NewI64(v int64) Value { return newInt(KindI64, v) }
func NewU64(v uint64) Value {
	return Value{Kind: KindU64, Int: new(big.Int).SetUint64(v)}
}
func NewI128(v *big.Int) Value { return Value{Kind: KindI128, Int: v} }
func NewU128(v *big.Int) Value { return Value{Kind: KindU128, Int: v} }
func NewF32(v float32) Value   { return Value{Kind: KindF32, Float: float64(v)} }
func NewF64(v float64) Value   { return Value{Kind: KindF64, Float: v} }
func NewString(s string) Value { return Value{Kind: KindString, Str: s} }
func NewBytes(b []byte) Value  { return Value{Kind: KindBytes, Bin: b} }

// IsNumeric reports whether the value kind participates in autoinc substitution.
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32, KindI64, KindU64, KindI128, KindU128, KindF32, KindF64:
		return true
	default:
		return false
	}
}

// IsZero reports whether a numeric value is exactly zero (integer or float).
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindF32, KindF64:
		return v.Float == 0
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32, KindI64, KindU64, KindI128, KindU128:
		return v.Int != nil && v.Int.Sign() == 0
	default:
		return false
	}
}

// Equal performs value equality used by index keys and row comparisons.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindF32, KindF64:
		return v.Float == o.Float
	case KindString:
		return v.Str == o.Str
	case KindBytes:
		if len(v.Bin) != len(o.Bin) {
			return false
		}
		for i := range v.Bin {
			if v.Bin[i] != o.Bin[i] {
				return false
			}
		}
		return true
	default:
		if v.Int == nil || o.Int == nil {
			return v.Int == o.Int
		}
		return v.Int.Cmp(o.Int) == 0
	}
}

// Less provides the total order used to keep B-Tree index keys sorted.
func (v Value) Less(o Value) bool {
	if v.Kind != o.Kind {
		return v.Kind < o.Kind
	}
	switch v.Kind {
	case KindBool:
		return !v.Bool && o.Bool
	case KindF32, KindF64:
		return v.Float < o.Float
	case KindString:
		return v.Str < o.Str
	case KindBytes:
		n := len(v.Bin)
		if len(o.Bin) < n {
			n = len(o.Bin)
		}
		for i := 0; i < n; i++ {
			if v.Bin[i] != o.Bin[i] {
				return v.Bin[i] < o.Bin[i]
			}
		}
		return len(v.Bin) < len(o.Bin)
	default:
		if v.Int == nil || o.Int == nil {
			return false
		}
		return v.Int.Cmp(o.Int) < 0
	}
}

// Row 一行数据，元素顺序对应列顺序
type Row []Value

// RowType 行的结构，元素顺序对应列顺序
type RowType []ValueKind

// ColumnSchema 一列的元数据
type ColumnSchema struct {
	TableId    TableId
	ColId      ColId
	ColName    string
	ColType    ValueKind
	IsAutoInc  bool
}

// IndexSchema 一个索引的元数据
type IndexSchema struct {
	IndexId   IndexId
	TableId   TableId
	ColId     ColId
	IndexName string
	IsUnique  bool
}

// SequenceSchema 一个序列的元数据
type SequenceSchema struct {
	SequenceId   SequenceId
	SequenceName string
	TableId      TableId
	ColId        ColId
	Increment    *big.Int
	Start        *big.Int
	MinValue     *big.Int
	MaxValue     *big.Int
	Allocated    *big.Int
}

// TableSchema 一张表的完整元数据
type TableSchema struct {
	TableId   TableId
	TableName string
	Columns   []ColumnSchema
	Indexes   []IndexSchema
}

// ColumnDef 建表时请求的列定义
type ColumnDef struct {
	ColName   string
	ColType   ValueKind
	IsAutoInc bool
}

// IndexDef 建索引时请求的索引定义（CreateIndexMutTx 的入参；建表时 TableId 会被覆写）
type IndexDef struct {
	TableId   TableId
	ColId     ColId
	IndexName string
	IsUnique  bool
}

// TableIndexDef 建表时内嵌的索引请求（列以名字定位，列序号在建表完成后才知道）
type TableIndexDef struct {
	ColName   string
	IndexName string
	IsUnique  bool
}

// TableDef 建表请求
type TableDef struct {
	TableName string
	Columns   []ColumnDef
	Indexes   []TableIndexDef
}

// SequenceDef 建序列请求
type SequenceDef struct {
	SequenceName string
	TableId      TableId
	ColId        ColId
	Increment    *big.Int // nil -> 1
	Start        *big.Int // nil -> 1
	MinValue     *big.Int // nil -> 1
	MaxValue     *big.Int // nil -> max i128
}

// Range 描述一次范围扫描的上下界，nil 端点表示无界
type Range struct {
	Min          *Value
	Max          *Value
	MinInclusive bool
	MaxInclusive bool
}

// Contains 报告 v 是否落在该范围内
func (r Range) Contains(v Value) bool {
	if r.Min != nil {
		if r.MinInclusive {
			if v.Less(*r.Min) {
				return false
			}
		} else if v.Less(*r.Min) || v.Equal(*r.Min) {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxInclusive {
			if r.Max.Less(v) {
				return false
			}
		} else if r.Max.Less(v) || v.Equal(*r.Max) {
			return false
		}
	}
	return true
}

// Operation 写日志中的操作类型
type Operation uint8

const (
	OpInsert Operation = iota
	OpDelete
)

// Write 写日志的一条记录
type Write struct {
	Op      Operation
	SetId   TableId
	DataKey DataKey
}

// Transaction 一次提交产生的写日志
type Transaction struct {
	Writes []Write
}
