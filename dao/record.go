package dao

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Record 持久化的字符表
type Record struct {
	Name    string
	Symbols string
	Created int64 // unix 秒
}

func (r *Record) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return nil, fmt.Errorf("gob encode failed: [%v] [%v]", r.Name, err)
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*Record, error) {
	r := new(Record)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(r); err != nil {
		return nil, fmt.Errorf("gob decode failed: %v", err)
	}
	return r, nil
}
