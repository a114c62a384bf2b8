package domain

import (
	"strings"
	"testing"
)

// TestErrIdNotFound_Error 测试ErrIdNotFound的Error方法
func TestErrIdNotFound_Error(t *testing.T) {
	err := NewErrIdNotFound("table", 7)
	errMsg := err.Error()

	expected := "table id 7 not found"
	if errMsg != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, errMsg)
	}
	if !strings.Contains(errMsg, "table") {
		t.Errorf("Expected error message to contain 'table'")
	}
	if !strings.Contains(errMsg, "not found") {
		t.Errorf("Expected error message to contain 'not found'")
	}
}

// TestErrUniqueConstraintViolation_Error 测试ErrUniqueConstraintViolation的Error方法
func TestErrUniqueConstraintViolation_Error(t *testing.T) {
	err := NewErrUniqueConstraintViolation("name_idx", "Foo", "name", NewString("Foo"))
	errMsg := err.Error()

	expected := "unique constraint name_idx violated on Foo.name"
	if errMsg != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, errMsg)
	}
}

// TestErrRowInvalidType_Error 测试ErrRowInvalidType的Error方法
func TestErrRowInvalidType_Error(t *testing.T) {
	err := NewErrRowInvalidType(TableId(4), Row{NewU32(1), NewString("x")})
	errMsg := err.Error()

	if !strings.Contains(errMsg, "2 elements") {
		t.Errorf("Expected error message to mention the row's element count, got '%s'", errMsg)
	}
	if !strings.Contains(errMsg, "table 4") {
		t.Errorf("Expected error message to mention the table id, got '%s'", errMsg)
	}
}

// TestErrEncoding_Error 测试ErrEncoding的Error方法
func TestErrEncoding_Error(t *testing.T) {
	err := NewErrEncoding("short buffer")
	expected := "encoding error: short buffer"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

// TestErrSequenceExists_Error 测试ErrSequenceExists的Error方法
func TestErrSequenceExists_Error(t *testing.T) {
	err := NewErrSequenceExists("Foo_id_seq")
	expected := "sequence Foo_id_seq already exists"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

// TestErrSequenceIncrementIsZero_Error 测试ErrSequenceIncrementIsZero的Error方法
func TestErrSequenceIncrementIsZero_Error(t *testing.T) {
	err := NewErrSequenceIncrementIsZero()
	if !strings.Contains(err.Error(), "increment") {
		t.Errorf("Expected error message to mention 'increment', got '%s'", err.Error())
	}
}

// TestErrSequenceMinMax_Error 测试ErrSequenceMinMax的Error方法
func TestErrSequenceMinMax_Error(t *testing.T) {
	err := NewErrSequenceMinMax()
	if !strings.Contains(err.Error(), "min_value") {
		t.Errorf("Expected error message to mention 'min_value', got '%s'", err.Error())
	}
}

// TestErrSequenceNotFound_Error 测试ErrSequenceNotFound的Error方法
func TestErrSequenceNotFound_Error(t *testing.T) {
	err := NewErrSequenceNotFound(SequenceId(9))
	expected := "sequence 9 not found"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

// TestErrSequenceNotInteger_Error 测试ErrSequenceNotInteger的Error方法
func TestErrSequenceNotInteger_Error(t *testing.T) {
	err := NewErrSequenceNotInteger(ColId(2), KindString)
	if !strings.Contains(err.Error(), "column 2") {
		t.Errorf("Expected error message to mention the column id, got '%s'", err.Error())
	}
}

// TestErrSequenceUnableToAllocate_Error 测试ErrSequenceUnableToAllocate的Error方法
func TestErrSequenceUnableToAllocate_Error(t *testing.T) {
	err := NewErrSequenceUnableToAllocate(SequenceId(0))
	expected := "sequence 0 unable to allocate a new value"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}
