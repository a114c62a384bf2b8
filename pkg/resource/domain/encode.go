package domain

import (
	"encoding/binary"
	"math"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// inlineThreshold 以内编码直接保存在 DataKey 里，超出则改为哈希
const inlineThreshold = 32

// DataKeyKind DataKey 的两种变体
type DataKeyKind uint8

const (
	DataKeyData DataKeyKind = iota
	DataKeyHash
)

// DataKey 行的内容寻址标识；两种变体都是可比较类型，可直接作 map key
type DataKey struct {
	Kind DataKeyKind
	Data string   // valid when Kind == DataKeyData
	Hash [32]byte // valid when Kind == DataKeyHash
}

// Less 给 DataKey 一个全序，供索引/有序扫描使用
func (k DataKey) Less(o DataKey) bool {
	if k.Kind != o.Kind {
		return k.Kind < o.Kind
	}
	if k.Kind == DataKeyData {
		return k.Data < o.Data
	}
	for i := range k.Hash {
		if k.Hash[i] != o.Hash[i] {
			return k.Hash[i] < o.Hash[i]
		}
	}
	return false
}

// RowId 行标识符，是 DataKey 的同义别名
type RowId = DataKey

// EncodeRow 产出行的规范字节编码，元素顺序即列顺序
func EncodeRow(row Row) []byte {
	buf := make([]byte, 0, 16*len(row))
	for _, v := range row {
		buf = append(buf, byte(v.Kind))
		switch v.Kind {
		case KindBool:
			if v.Bool {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case KindF32, KindF64:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], math.Float64bits(v.Float))
			buf = append(buf, b[:]...)
		case KindString:
			buf = appendLenPrefixed(buf, []byte(v.Str))
		case KindBytes:
			buf = appendLenPrefixed(buf, v.Bin)
		default:
			var raw []byte
			if v.Int != nil {
				raw = v.Int.Bytes()
				if v.Int.Sign() < 0 {
					buf = append(buf, 1)
				} else {
					buf = append(buf, 0)
				}
			} else {
				buf = append(buf, 0)
			}
			buf = appendLenPrefixed(buf, raw)
		}
	}
	return buf
}

func appendLenPrefixed(buf []byte, b []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, b...)
}

// ComputeDataKey derives the content-addressed DataKey for a row's canonical encoding.
func ComputeDataKey(encoded []byte) DataKey {
	if len(encoded) <= inlineThreshold {
		return DataKey{Kind: DataKeyData, Data: string(encoded)}
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(encoded)
	sum := h.Sum(nil)
	var arr [32]byte
	copy(arr[:], sum)
	return DataKey{Kind: DataKeyHash, Hash: arr}
}

// maxI128 returns the maximum signed 128-bit value, used as the default sequence ceiling.
func maxI128() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 127)
	return max.Sub(max, big.NewInt(1))
}

// MaxI128 exported accessor for the maximum signed 128-bit value.
func MaxI128() *big.Int { return maxI128() }
