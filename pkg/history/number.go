package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrDecode - данные не удалось разобрать в запись истории.
var ErrDecode = errors.New("decode error")

// Number принимает число как в виде JSON-числа, так и в виде строки с числом.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrDecode)
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return fmt.Errorf("%w: expected a string or number, got %s", ErrDecode, data)
	}

	if !isDecimal(raw) {
		return fmt.Errorf("%w: %q is not a number", ErrDecode, raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q is not a number", ErrDecode, raw)
	}
	*n = Number(v)

	return nil
}

// isDecimal проверяет, что s - десятичная запись числа:
// [+-] цифры [. цифры] [e [+-] цифры], без пробелов, hex и подчеркиваний.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseNumber разбирает одно значение по тем же правилам, что и поля записей.
func ParseNumber(data []byte) (float64, error) {
	var n Number
	if err := n.UnmarshalJSON(data); err != nil {
		return 0, err
	}
	return float64(n), nil
}

type field struct {
	name string
	dst  *float64
}

// decodeFields разбирает JSON-объект в набор числовых полей.
// Все поля обязательны; strict запрещает неизвестные ключи.
func decodeFields(data []byte, fields []field, strict bool) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if obj == nil {
		return fmt.Errorf("%w: expected an object", ErrDecode)
	}

	for _, f := range fields {
		raw, ok := obj[f.name]
		if !ok {
			return fmt.Errorf("%w: missing field %q", ErrDecode, f.name)
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
		*f.dst = v
		delete(obj, f.name)
	}

	if strict {
		for k := range obj {
			return fmt.Errorf("%w: unknown field %q", ErrDecode, k)
		}
	}

	return nil
}
