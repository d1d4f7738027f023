package byteio

import "strconv"

// C0Ctls contains the classic ASCII control mnemonics, indexed by byte value.
var C0Ctls = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// C1Ctls contains the extended ISO-8859 control mnemonics for bytes 0x80 through 0x9f.
var C1Ctls = [32]string{
	"<PAD>", "<HOP>", "<BPH>", "<NBH>", "<IND>", "<NEL>", "<SSA>", "<ESA>",
	"<HTS>", "<HTJ>", "<VTS>", "<PLD>", "<PLU>", "<RI>", "<SS2>", "<SS3>",
	"<DCS>", "<PU1>", "<PU2>", "<STS>", "<CCH>", "<MW>", "<SPA>", "<EPA>",
	"<SOS>", "<SGCI>", "<SCI>", "<CSI>", "<ST>", "<OSC>", "<PM>", "<APC>",
}

// Mnemonic renders a byte for humans: control bytes by their mnemonic,
// space and delete as <SP> and <DEL>, other ASCII as a quoted character,
// and anything else in hex.
func Mnemonic(b byte) string {
	switch {
	case b < 0x20:
		return C0Ctls[b]
	case b == 0x20:
		return "<SP>"
	case b == 0x7f:
		return "<DEL>"
	case b < 0x7f:
		return strconv.QuoteRune(rune(b))
	case b <= 0x9f:
		return C1Ctls[b-0x80]
	default:
		return "0x" + strconv.FormatUint(uint64(b), 16)
	}
}

// CaretForm computes the ^-escaped printable form of a C0 control byte, or
// the empty string for any other byte.
func CaretForm(b byte) string {
	if b < 0x20 || b == 0x7f {
		return "^" + string(rune(b^0x40))
	}
	return ""
}
