package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sigurn/crc16"
)

const (
	pixGUI = "BR.GOV.BCB.PIX"
	// A TLV value holds at most 99 bytes; the key shares field 26 with the GUI.
	maxPixKey = 99 - (4 + len(pixGUI)) - 4
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// PixCharge is what the customer needs to pay an order by PIX. The code is a
// static copy-and-paste placeholder; no payment provider is involved.
type PixCharge struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
	Code   string          `json:"code"`
}

func NewPixCharge(key, city, name string, amount decimal.Decimal) PixCharge {
	return PixCharge{
		Key:    key,
		Amount: amount,
		Code:   BuildPixCode(key, city, name, amount),
	}
}

// BuildPixCode lays the charge out as EMV tag-length-value fields ending in
// a CRC16 checksum, the shape of a static BR Code.
func BuildPixCode(key, city, name string, amount decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(tlv("00", "01"))
	b.WriteString(tlv("26", tlv("00", pixGUI)+tlv("01", truncate(key, maxPixKey))))
	b.WriteString(tlv("52", "0000"))
	b.WriteString(tlv("53", "986"))
	b.WriteString(tlv("54", amount.StringFixed(2)))
	b.WriteString(tlv("58", "BR"))
	b.WriteString(tlv("59", truncate(strings.ToUpper(strings.TrimSpace(name)), 25)))
	b.WriteString(tlv("60", truncate(strings.ToUpper(strings.TrimSpace(city)), 15)))
	b.WriteString(tlv("62", tlv("05", "***")))
	b.WriteString("6304")
	payload := b.String()
	return payload + fmt.Sprintf("%04X", checksum(payload))
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func checksum(s string) uint16 {
	return crc16.Checksum([]byte(s), crcTable)
}
