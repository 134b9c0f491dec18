// Package base58 encodes bytes with the Bitcoin Base58 alphabet.
package base58

import "github.com/treeforest/basex"

// Encode base58 编码，每个前导 0x00 字节编码为 '1'
func Encode(b []byte) []byte {
	return []byte(basex.Bitcoin.Encode(b))
}

// Decode base58 解码，遇到字符表以外的字符时返回错误
func Decode(b []byte) ([]byte, error) {
	return basex.Bitcoin.Decode(string(b))
}
