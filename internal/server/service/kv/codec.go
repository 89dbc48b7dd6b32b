package kv

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nickzhog/storage-bench/pkg/history"
)

// IndexKey - служебный ключ, под которым лежит список всех записанных ключей.
var IndexKey = []byte("_keys_index")

// DeriveKey строит ключ записи из времени начала интервала.
// Одно и то же значение всегда дает один и тот же ключ.
func DeriveKey(startTime float64) []byte {
	return strconv.AppendFloat(nil, startTime, 'f', -1, 64)
}

func EncodeValue(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func DecodeDepth(data []byte) (history.DepthRecord, error) {
	var r history.DepthRecord
	if err := decodeValue(data, &r); err != nil {
		return history.DepthRecord{}, err
	}
	return r, nil
}

func DecodeRunePool(data []byte) (history.RunePoolRecord, error) {
	var r history.RunePoolRecord
	if err := decodeValue(data, &r); err != nil {
		return history.RunePoolRecord{}, err
	}
	return r, nil
}

func decodeValue(data []byte, dst json.Unmarshaler) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", history.ErrDecode)
	}
	return dst.UnmarshalJSON(data)
}

// EncodeIndex пишет индекс JSON-массивом ключей в base64,
// поэтому ключи с любыми байтами читаются обратно без изменений.
func EncodeIndex(keys [][]byte) ([]byte, error) {
	if keys == nil {
		keys = [][]byte{}
	}
	return json.Marshal(keys)
}

func DecodeIndex(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty index", history.ErrDecode)
	}

	var keys [][]byte
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: index: %v", history.ErrDecode, err)
	}
	if keys == nil {
		return nil, fmt.Errorf("%w: index is null", history.ErrDecode)
	}

	return keys, nil
}
