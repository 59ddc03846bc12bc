package util

import (
	"strings"

	"github.com/go-ble/ble"
)

func AddrEqualAddr(a string, b string) bool {
	return strings.EqualFold(a, b)
}

func UuidEqualStr(u ble.UUID, s string) bool {
	compare := strings.Replace(s, "-", "", -1)
	return AddrEqualAddr(compare, u.String())
}

