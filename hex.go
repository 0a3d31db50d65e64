package vramcon

// hexDigits is 8 nibbles of a 32-bit value.
const hexDigits = 8

// AppendHex appends "0x" and exactly eight uppercase hex digits of v, most
// significant nibble first.
func AppendHex(dst []byte, v uint32) []byte {
	dst = append(dst, '0', 'x')
	for i := hexDigits - 1; i >= 0; i-- {
		digit := byte(v>>(uint(i)*4)) & 0xF
		if digit < 10 {
			dst = append(dst, '0'+digit)
		} else {
			dst = append(dst, 'A'+digit-10)
		}
	}
	return dst
}

// PrintHex writes v as AppendHex formats it.
func PrintHex(p Printer, v uint32) error {
	var buf [2 + hexDigits]byte
	return p.PutStr(string(AppendHex(buf[:0], v)))
}
