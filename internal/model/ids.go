package model

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

const (
	RowIDPrefix    = "r"
	BlockIDPrefix  = "b"
	BadgeIDPrefix  = "i"
	SliderIDPrefix = "s"
)

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns prefix-<suffix> where suffix is 6 chars of lowercase base32 (30 bits).
// Ids only need to be unique within one layout, so short is fine.
func NewID(prefix string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("model: read random id: %v", err))
	}
	suffix := strings.ToLower(idEncoding.EncodeToString(b[:]))[:6]
	return prefix + "-" + suffix
}
