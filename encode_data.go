// encode_data.go

/*
TLCS-900/TMP94C241 Assembler — data movement encoders

(c) 2024 - 2026 Zayn Otley
License: GPLv3 or later
*/

package main

import (
	"strings"
)

// ---------------------------------------------------------------------
// LD
// ---------------------------------------------------------------------

func (a *Assembler) encodeLd(ops []Operand) bool {
	if len(ops) < 2 {
		a.errorf("LD requires two operands")
		return false
	}

	dst := &ops[0]
	src := &ops[1]

	// Memory-to-memory transfers do not exist on the TLCS-900;
	// rewrite via an intermediate register.
	if isMemMode(dst.Mode) && isMemMode(src.Mode) {
		a.errorf("unsupported LD operand combination")
		return false
	}

	// LD reg, imm
	if dst.Mode == AddrRegister && src.Mode == AddrImmediate {
		switch dst.Size {
		case SizeByte:
			code := reg8Code(dst.Reg)
			if code >= 0 && code < 8 {
				// Short form for the current-bank registers.
				a.emitByte(0x20 + byte(code))
				a.emitByte(byte(src.Value))
				return true
			}
			if prefix := reg8Prefix(dst.Reg); prefix >= 0 {
				a.emitByte(byte(prefix))
				a.emitByte(0x30 + byte(code&1))
				a.emitByte(byte(src.Value))
				return true
			}
		case SizeWord:
			code := reg16Code(dst.Reg)
			if code >= 0 && code < 8 {
				// Tiny immediates 0..7 have a dedicated two-byte
				// pattern; only stable constants may take it.
				if src.ValueKnown && src.IsConst && src.Value >= 0 && src.Value <= 7 {
					a.emitByte(0xD8 + byte(code))
					a.emitByte(0xA8 + byte(src.Value))
					return true
				}
				a.emitByte(0x30 + byte(code))
				a.emitWord(uint16(src.Value))
				return true
			}
			if code >= 0 {
				a.emitByte(0xD8 + byte(code))
				a.emitByte(0x30)
				a.emitWord(uint16(src.Value))
				return true
			}
		case SizeLong:
			if code := reg32Code(dst.Reg); code >= 0 {
				a.emitByte(0x40 + byte(code))
				a.emitLong(uint32(src.Value))
				return true
			}
		}
	}

	// LD reg, reg
	if dst.Mode == AddrRegister && src.Mode == AddrRegister {
		if dst.Size == SizeByte && src.Size == SizeByte {
			dcode := reg8Code(dst.Reg)
			scode := reg8Code(src.Reg)
			if dcode >= 0 && scode >= 0 {
				a.emitByte(0xC8 + byte(scode>>1))
				a.emitByte(0x20 + byte((scode&1)<<3) + byte((dcode>>1)<<1) + byte(dcode&1))
				return true
			}
		}
		if dst.Size == SizeWord && src.Size == SizeWord {
			dcode := reg16Code(dst.Reg)
			scode := reg16Code(src.Reg)
			if dcode >= 0 && scode >= 0 {
				a.emitByte(0xD8 + byte(scode))
				a.emitByte(0x28 + byte(dcode))
				return true
			}
		}
		if dst.Size == SizeLong && src.Size == SizeLong {
			dcode := reg32Code(dst.Reg)
			scode := reg32Code(src.Reg)
			if dcode >= 0 && scode >= 0 {
				a.emitByte(0xE8 + byte(scode))
				a.emitByte(0x28 + byte(dcode))
				return true
			}
		}
	}

	// LD reg, (mem)
	if dst.Mode == AddrRegister && isMemMode(src.Mode) {
		switch dst.Size {
		case SizeByte:
			if code := reg8Code(dst.Reg); code >= 0 {
				if !a.emitMem8(src, code) {
					return false
				}
				a.emitByte(0x20 + byte(code&1))
				return true
			}
		case SizeWord:
			if code := reg16Code(dst.Reg); code >= 0 {
				if !a.emitMemWL(src, 0x90) {
					return false
				}
				a.emitByte(0x20 + byte(code))
				return true
			}
		case SizeLong:
			if code := reg32Code(dst.Reg); code >= 0 {
				if !a.emitMemWL(src, 0xA0) {
					return false
				}
				a.emitByte(0x20 + byte(code))
				return true
			}
		}
	}

	// LD (nn), reg — direct stores take the compact address-prefix
	// form: 0xF0/0xF1/0xF2 selects the address width, the operation
	// byte carries data width and register.
	if dst.Mode == AddrDirect && src.Mode == AddrRegister {
		var family byte
		var code int
		switch src.Size {
		case SizeByte:
			family, code = 0x40, reg8Code(src.Reg)
		case SizeWord:
			family, code = 0x50, reg16Code(src.Reg)
		case SizeLong:
			family, code = 0x60, reg32Code(src.Reg)
		}
		if code >= 0 && code < 8 {
			a.emitDirectPrefix(dst)
			a.emitByte(family + byte(code))
			return true
		}
	}

	// LD (mem), reg
	if isMemMode(dst.Mode) && src.Mode == AddrRegister {
		switch src.Size {
		case SizeByte:
			if code := reg8Code(src.Reg); code >= 0 {
				if !a.emitMem8(dst, code) {
					return false
				}
				a.emitByte(0x48 + byte(code&1))
				return true
			}
		case SizeWord:
			if code := reg16Code(src.Reg); code >= 0 {
				if !a.emitMemWL(dst, 0x90) {
					return false
				}
				a.emitByte(0x48 + byte(code))
				return true
			}
		case SizeLong:
			if code := reg32Code(src.Reg); code >= 0 {
				if !a.emitMemWL(dst, 0xA0) {
					return false
				}
				a.emitByte(0x48 + byte(code))
				return true
			}
		}
	}

	// LD (mem), imm — byte store.
	if isMemMode(dst.Mode) && src.Mode == AddrImmediate {
		a.emitByte(0x80)
		if !a.emitMemOperand(dst) {
			return false
		}
		a.emitByte(0x00)
		a.emitByte(byte(src.Value))
		return true
	}

	a.errorf("unsupported LD operand combination")
	return false
}

// emitDirectPrefix emits the 0xF0/0xF1/0xF2 address prefix and the
// address bytes for a direct-store operand.
func (a *Assembler) emitDirectPrefix(op *Operand) {
	switch directAddrWidth(op) {
	case 8:
		a.emitByte(0xF0)
		a.emitByte(byte(op.Value))
	case 16:
		a.emitByte(0xF1)
		a.emitWord(uint16(op.Value))
	default:
		a.emitByte(0xF2)
		a.emitWord24(uint32(op.Value))
	}
}

// ---------------------------------------------------------------------
// LDW — word-size LD variant
// ---------------------------------------------------------------------

func (a *Assembler) encodeLdw(ops []Operand) bool {
	if len(ops) < 2 {
		a.errorf("LDW requires two operands")
		return false
	}

	dst := &ops[0]
	src := &ops[1]

	// LDW (mem), imm16
	if isMemMode(dst.Mode) && src.Mode == AddrImmediate {
		if !a.emitMemWL(dst, 0x90) {
			return false
		}
		a.emitByte(0x00)
		a.emitWord(uint16(src.Value))
		return true
	}

	// LDW reg16, (mem)
	if dst.Mode == AddrRegister && dst.Size == SizeWord && isMemMode(src.Mode) {
		if code := reg16Code(dst.Reg); code >= 0 {
			if !a.emitMemWL(src, 0x90) {
				return false
			}
			a.emitByte(0x20 + byte(code))
			return true
		}
	}

	// LDW (mem), reg16
	if isMemMode(dst.Mode) && src.Mode == AddrRegister && src.Size == SizeWord {
		if code := reg16Code(src.Reg); code >= 0 {
			if !a.emitMemWL(dst, 0x90) {
				return false
			}
			a.emitByte(0x48 + byte(code))
			return true
		}
	}

	a.errorf("unsupported LDW operand combination")
	return false
}

// ---------------------------------------------------------------------
// LDA — load effective address
// ---------------------------------------------------------------------

func (a *Assembler) encodeLda(ops []Operand) bool {
	if len(ops) < 2 {
		a.errorf("LDA requires two operands")
		return false
	}

	dst := &ops[0]
	src := ops[1]

	if dst.Mode != AddrRegister || dst.Size != SizeLong {
		a.errorf("LDA destination must be 32-bit register")
		return false
	}
	dcode := reg32Code(dst.Reg)
	if dcode < 0 {
		a.errorf("invalid LDA destination register")
		return false
	}

	switch {
	case isMemMode(src.Mode):
		// Use as-is.
	case src.Mode == AddrImmediate:
		// A bare address is a direct operand.
		src.Mode = AddrDirect
	case src.Mode == AddrRegister && src.Size == SizeLong && len(ops) >= 3 && ops[2].Mode == AddrImmediate:
		// LDA xrr, xrr, offset without parentheses.
		src = Operand{
			Mode:       AddrIndexed,
			Reg:        src.Reg,
			Size:       src.Size,
			Value:      ops[2].Value,
			ValueKnown: ops[2].ValueKnown,
			IsConst:    ops[2].IsConst,
		}
	case src.Mode == AddrRegister && src.Size == SizeLong:
		src = Operand{Mode: AddrRegInd, Reg: src.Reg, Size: src.Size}
	default:
		a.errorf("unsupported LDA operand combination")
		return false
	}

	a.emitByte(0xF5)
	if !a.emitMemOperand(&src) {
		return false
	}
	a.emitByte(0x30 + byte(dcode))
	return true
}

// ---------------------------------------------------------------------
// LDC — control register transfers
// ---------------------------------------------------------------------

// Control register codes for the TMP94C241 DMA engine and interrupt
// nesting counter.
var controlRegTable = []struct {
	name string
	code int64
	size OperandSize
}{
	{"DMAS0", 0x00, SizeLong}, {"DMAS1", 0x04, SizeLong},
	{"DMAS2", 0x08, SizeLong}, {"DMAS3", 0x0C, SizeLong},
	{"DMAD0", 0x10, SizeLong}, {"DMAD1", 0x14, SizeLong},
	{"DMAD2", 0x18, SizeLong}, {"DMAD3", 0x1C, SizeLong},
	{"DMAC0", 0x20, SizeWord}, {"DMAC1", 0x24, SizeWord},
	{"DMAC2", 0x28, SizeWord}, {"DMAC3", 0x2C, SizeWord},
	{"DMAM0", 0x22, SizeByte}, {"DMAM1", 0x26, SizeByte},
	{"DMAM2", 0x2A, SizeByte}, {"DMAM3", 0x2E, SizeByte},
	{"INTNEST", 0x3C, SizeWord},
}

func lookupControlReg(name string) (int64, OperandSize, bool) {
	for _, def := range controlRegTable {
		if strings.EqualFold(name, def.name) {
			return def.code, def.size, true
		}
	}
	return 0, SizeNone, false
}

// encodeLdc handles both directions: LDC cr, r stores a register
// into a control register (operation byte 0x2E), LDC r, cr loads
// from one (0x2F). The register operand's width selects the prefix.
func (a *Assembler) encodeLdc(ops []Operand) bool {
	if len(ops) < 2 {
		a.errorf("LDC requires two operands")
		return false
	}

	var reg *Operand
	var cr *Operand
	var opByte byte

	switch {
	case ops[0].Mode == AddrControl && ops[1].Mode == AddrRegister:
		cr, reg, opByte = &ops[0], &ops[1], 0x2E
	case ops[0].Mode == AddrRegister && ops[1].Mode == AddrControl:
		reg, cr, opByte = &ops[0], &ops[1], 0x2F
	default:
		a.errorf("LDC requires a control register and a register")
		return false
	}

	var prefix int
	switch reg.Size {
	case SizeByte:
		if code := reg8Code(reg.Reg); code >= 0 && code < 8 {
			prefix = 0xC8 + code
		} else {
			prefix = -1
		}
	case SizeWord:
		if code := reg16Code(reg.Reg); code >= 0 && code < 8 {
			prefix = 0xD8 + code
		} else {
			prefix = -1
		}
	case SizeLong:
		if code := reg32Code(reg.Reg); code >= 0 {
			prefix = 0xE8 + code
		} else {
			prefix = -1
		}
	default:
		prefix = -1
	}
	if prefix < 0 {
		a.errorf("invalid LDC register")
		return false
	}

	a.emitByte(byte(prefix))
	a.emitByte(opByte)
	a.emitByte(byte(cr.Value))
	return true
}

// ---------------------------------------------------------------------
// Block transfers
// ---------------------------------------------------------------------

func (a *Assembler) encodeLdi(ops []Operand) bool {
	a.emitByte(0x85)
	a.emitByte(0x10)
	return true
}

func (a *Assembler) encodeLdir(ops []Operand) bool {
	a.emitByte(0x85)
	a.emitByte(0x11)
	return true
}

func (a *Assembler) encodeLddr(ops []Operand) bool {
	a.emitByte(0x85)
	a.emitByte(0x13)
	return true
}

func (a *Assembler) encodeLdiw(ops []Operand) bool {
	a.emitByte(0x95)
	a.emitByte(0x10)
	return true
}

func (a *Assembler) encodeLdirw(ops []Operand) bool {
	a.emitByte(0x95)
	a.emitByte(0x11)
	return true
}

func (a *Assembler) encodeLddrw(ops []Operand) bool {
	a.emitByte(0x95)
	a.emitByte(0x13)
	return true
}

// ---------------------------------------------------------------------
// EX — exchange
// ---------------------------------------------------------------------

func (a *Assembler) encodeEx(ops []Operand) bool {
	if len(ops) < 2 {
		a.errorf("EX requires two operands")
		return false
	}

	// EX (mem), reg
	if isMemMode(ops[0].Mode) && ops[1].Mode == AddrRegister {
		switch ops[1].Size {
		case SizeByte:
			if code := reg8Code(ops[1].Reg); code >= 0 {
				if !a.emitMem8(&ops[0], code) {
					return false
				}
				a.emitByte(0x30 + byte(code&1))
				return true
			}
		case SizeWord:
			if code := reg16Code(ops[1].Reg); code >= 0 {
				if !a.emitMemWL(&ops[0], 0x90) {
					return false
				}
				a.emitByte(0x30 + byte(code))
				return true
			}
		case SizeLong:
			if code := reg32Code(ops[1].Reg); code >= 0 {
				if !a.emitMemWL(&ops[0], 0xA0) {
					return false
				}
				a.emitByte(0x30 + byte(code))
				return true
			}
		}
	}

	// EX reg, reg. The F,F' alternate-flags exchange is not wired;
	// it reports the same unsupported-combination error.
	if ops[0].Mode == AddrRegister && ops[1].Mode == AddrRegister {
		if ops[0].Size == SizeByte && ops[1].Size == SizeByte {
			code0 := reg8Code(ops[0].Reg)
			code1 := reg8Code(ops[1].Reg)
			if code0 >= 0 && code1 >= 0 {
				a.emitByte(0xC8 + byte(code1>>1))
				a.emitByte(0x38 + byte((code1&1)<<3) + byte((code0>>1)<<1) + byte(code0&1))
				return true
			}
		}
		if ops[0].Size == SizeWord && ops[1].Size == SizeWord {
			code0 := reg16Code(ops[0].Reg)
			code1 := reg16Code(ops[1].Reg)
			if code0 >= 0 && code1 >= 0 {
				a.emitByte(0xD8 + byte(code1))
				a.emitByte(0x38 + byte(code0))
				return true
			}
		}
	}

	a.errorf("unsupported EX operand combination")
	return false
}
