package pack

import (
	"fmt"
	"math"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int, int8, int16, int32, int64:
		s, _ := toInt64(n)
		if s < 0 {
			return 0, fmt.Errorf("%w: negative value %d for unsigned field", ErrValueRange, s)
		}
		return uint64(s), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrValueType, v)
	}
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint64(n)
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows a signed field", ErrValueRange, u)
		}
		return int64(u), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrValueType, v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	}
	if i, err := toInt64(v); err == nil {
		return float64(i), nil
	}
	if u, err := toUint64(v); err == nil {
		return float64(u), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrValueType, v)
}

func toBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case *buffer.Buffer:
		return b.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrValueType, v)
	}
}
