package domain

import "fmt"

// 数据存储领域错误

// ErrIdNotFound 标识符不存在错误（表/索引/序列/行）
type ErrIdNotFound struct {
	Kind string
	Id   uint32
}

func (e *ErrIdNotFound) Error() string {
	return fmt.Sprintf("%s id %d not found", e.Kind, e.Id)
}

// NewErrIdNotFound 创建标识符不存在错误
func NewErrIdNotFound(kind string, id uint32) *ErrIdNotFound {
	return &ErrIdNotFound{Kind: kind, Id: id}
}

// ErrUniqueConstraintViolation 唯一约束违反错误
type ErrUniqueConstraintViolation struct {
	Constraint string
	Table      string
	Column     string
	Value      Value
}

func (e *ErrUniqueConstraintViolation) Error() string {
	return fmt.Sprintf("unique constraint %s violated on %s.%s", e.Constraint, e.Table, e.Column)
}

// NewErrUniqueConstraintViolation 创建唯一约束违反错误
func NewErrUniqueConstraintViolation(constraint, table, column string, value Value) *ErrUniqueConstraintViolation {
	return &ErrUniqueConstraintViolation{Constraint: constraint, Table: table, Column: column, Value: value}
}

// ErrRowInvalidType 行元数不匹配错误
type ErrRowInvalidType struct {
	TableId TableId
	Row     Row
}

func (e *ErrRowInvalidType) Error() string {
	return fmt.Sprintf("row has %d elements, does not match row type for table %d", len(e.Row), e.TableId)
}

// NewErrRowInvalidType 创建行元数不匹配错误
func NewErrRowInvalidType(tableId TableId, row Row) *ErrRowInvalidType {
	return &ErrRowInvalidType{TableId: tableId, Row: row}
}

// ErrEncoding 系统行编解码失败错误
type ErrEncoding struct {
	Reason string
}

func (e *ErrEncoding) Error() string {
	return fmt.Sprintf("encoding error: %s", e.Reason)
}

// NewErrEncoding 创建编解码失败错误
func NewErrEncoding(reason string) *ErrEncoding {
	return &ErrEncoding{Reason: reason}
}

// 序列相关错误

// ErrSequenceExists 同名序列已存在错误
type ErrSequenceExists struct {
	Name string
}

func (e *ErrSequenceExists) Error() string {
	return fmt.Sprintf("sequence %s already exists", e.Name)
}

// NewErrSequenceExists 创建同名序列已存在错误
func NewErrSequenceExists(name string) *ErrSequenceExists {
	return &ErrSequenceExists{Name: name}
}

// ErrSequenceIncrementIsZero 序列步长为零错误
type ErrSequenceIncrementIsZero struct{}

func (e *ErrSequenceIncrementIsZero) Error() string {
	return "sequence increment must not be zero"
}

// NewErrSequenceIncrementIsZero 创建序列步长为零错误
func NewErrSequenceIncrementIsZero() *ErrSequenceIncrementIsZero {
	return &ErrSequenceIncrementIsZero{}
}

// ErrSequenceMinMax 序列最小值不小于最大值错误
type ErrSequenceMinMax struct{}

func (e *ErrSequenceMinMax) Error() string {
	return "sequence min_value must be less than max_value"
}

// NewErrSequenceMinMax 创建序列 min/max 错误
func NewErrSequenceMinMax() *ErrSequenceMinMax {
	return &ErrSequenceMinMax{}
}

// ErrSequenceMinStart 序列起始值小于最小值错误
type ErrSequenceMinStart struct{}

func (e *ErrSequenceMinStart) Error() string {
	return "sequence start must be >= min_value"
}

// NewErrSequenceMinStart 创建序列 start < min 错误
func NewErrSequenceMinStart() *ErrSequenceMinStart {
	return &ErrSequenceMinStart{}
}

// ErrSequenceMaxStart 序列起始值大于最大值错误
type ErrSequenceMaxStart struct{}

func (e *ErrSequenceMaxStart) Error() string {
	return "sequence start must be <= max_value"
}

// NewErrSequenceMaxStart 创建序列 start > max 错误
func NewErrSequenceMaxStart() *ErrSequenceMaxStart {
	return &ErrSequenceMaxStart{}
}

// ErrSequenceNotFound 序列不存在错误
type ErrSequenceNotFound struct {
	SequenceId SequenceId
}

func (e *ErrSequenceNotFound) Error() string {
	return fmt.Sprintf("sequence %d not found", e.SequenceId)
}

// NewErrSequenceNotFound 创建序列不存在错误
func NewErrSequenceNotFound(id SequenceId) *ErrSequenceNotFound {
	return &ErrSequenceNotFound{SequenceId: id}
}

// ErrSequenceNotInteger 自增列的值无法被强转为整数错误
type ErrSequenceNotInteger struct {
	Col  ColId
	Type ValueKind
}

func (e *ErrSequenceNotInteger) Error() string {
	return fmt.Sprintf("column %d of type %d cannot hold a sequence value", e.Col, e.Type)
}

// NewErrSequenceNotInteger 创建自增列类型不兼容错误
func NewErrSequenceNotInteger(col ColId, kind ValueKind) *ErrSequenceNotInteger {
	return &ErrSequenceNotInteger{Col: col, Type: kind}
}

// ErrSequenceUnableToAllocate 序列扩容后仍无法分配新值错误
type ErrSequenceUnableToAllocate struct {
	SequenceId SequenceId
}

func (e *ErrSequenceUnableToAllocate) Error() string {
	return fmt.Sprintf("sequence %d unable to allocate a new value", e.SequenceId)
}

// NewErrSequenceUnableToAllocate 创建序列无法分配新值错误
func NewErrSequenceUnableToAllocate(id SequenceId) *ErrSequenceUnableToAllocate {
	return &ErrSequenceUnableToAllocate{SequenceId: id}
}
