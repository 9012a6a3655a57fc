// directives.go

/*
TLCS-900/TMP94C241 Assembler — directive handlers

ASL-compatible directives: ORG, EQU/=/SET, data definition (DB/DW/DD
and their aliases), space reservation (DS and aliases), ALIGN,
INCLUDE, BINCLUDE/INCBIN, CPU, MAXMODE, END, listing controls and
MACRO/ENDM.

(c) 2024 - 2026 Zayn Otley
License: GPLv3 or later
*/

package main

import (
	"os"
	"strings"
)

// directiveCanon maps every accepted directive spelling to its
// canonical name.
var directiveCanon = map[string]string{
	"ORG": "ORG",
	"EQU": "EQU", "=": "EQU",
	"SET": "SET",
	"DB": "DB", "DEFB": "DB", "DC.B": "DB", "FCB": "DB", "BYT": "DB", ".BYTE": "DB",
	"DW": "DW", "DEFW": "DW", "DC.W": "DW", "FDB": "DW", "WOR": "DW", ".WORD": "DW", "DATA": "DW",
	"DD": "DD", "DEFL": "DD", "DC.L": "DD", ".LONG": "DD",
	"DS": "DS", "DEFS": "DS", "RMB": "DS", "RES": "DS", ".BLKB": "DS",
	"ALIGN":    "ALIGN",
	"INCLUDE":  "INCLUDE",
	"BINCLUDE": "BINCLUDE", "INCBIN": "BINCLUDE",
	"CPU": "CPU", ".CPU": "CPU",
	"MAXMODE": "MAXMODE",
	"END":     "END",
	"PAGE":    "PAGE", "NEWPAGE": "PAGE",
	"LISTING": "LISTING", "PRTINIT": "LISTING", "PRTEXIT": "LISTING",
	"MACRO": "MACRO",
	"ENDM":  "ENDM",
}

// isDirectiveName reports whether name spells a directive.
func isDirectiveName(name string) bool {
	_, ok := directiveCanon[strings.ToUpper(name)]
	return ok
}

// handleDirective executes a directive. The second result reports
// whether the mnemonic was a directive at all; the first whether it
// was handled without error.
func (a *Assembler) handleDirective(mnemonic, label string) (bool, bool) {
	canon, ok := directiveCanon[strings.ToUpper(mnemonic)]
	if !ok {
		return false, false
	}

	// RES doubles as the bit-reset instruction. A bit,register or
	// bit,(mem) pair is the instruction; anything else reserves space.
	if canon == "DS" && strings.EqualFold(mnemonic, "RES") && a.looksLikeResInstruction() {
		return false, false
	}

	// SET doubles as the bit-set instruction. The directive form
	// always carries a label (NAME SET value).
	if canon == "SET" && label == "" {
		return false, false
	}

	// EQU, SET and MACRO bind the label themselves; every other
	// directive leaves it naming the current location.
	switch canon {
	case "EQU", "SET", "MACRO":
	default:
		if label != "" {
			a.defineSymbol(label, SymLabel, int64(a.pc))
		}
	}

	switch canon {
	case "ORG":
		return a.handleOrg(), true
	case "EQU":
		return a.handleEqu(label), true
	case "SET":
		return a.handleSet(label), true
	case "DB":
		return a.handleDb(), true
	case "DW":
		return a.handleDw(), true
	case "DD":
		return a.handleDd(), true
	case "DS":
		return a.handleDs(), true
	case "ALIGN":
		return a.handleAlign(), true
	case "INCLUDE":
		return a.handleInclude(), true
	case "BINCLUDE":
		return a.handleBinclude(), true
	case "CPU":
		return a.handleCpu(), true
	case "MAXMODE":
		return a.handleMaxmode(), true
	case "END":
		return true, true
	case "PAGE", "LISTING":
		a.skipToLineEnd()
		return true, true
	case "MACRO":
		return a.macroStartDefinition(label), true
	case "ENDM":
		return a.macroEndDefinition(), true
	}
	return false, false
}

// looksLikeResInstruction peeks past the first expression for a
// comma followed by a register name or an opening parenthesis.
func (a *Assembler) looksLikeResInstruction() bool {
	saved := a.lex.Save()
	defer a.lex.Restore(saved)

	// A leading parenthesis can only be the RES n,(mem) instruction
	// form... but it can equally be a parenthesised count. Walk an
	// expression and look for the comma.
	depth := 0
	for {
		tok := a.lex.Next()
		switch tok.Type {
		case TokNewline, TokEOF:
			return false
		case TokLParen:
			depth++
		case TokRParen:
			depth--
		case TokComma:
			if depth == 0 {
				after := a.lex.Peek()
				if after.Type == TokLParen {
					return true
				}
				if after.Type == TokIdent {
					_, _, isReg := lookupRegister(after.Text)
					return isReg
				}
				return false
			}
		}
	}
}

func (a *Assembler) skipToLineEnd() {
	for {
		t := a.lex.Peek().Type
		if t == TokNewline || t == TokEOF {
			return
		}
		a.lex.Next()
	}
}

// ---------------------------------------------------------------------
// Location control
// ---------------------------------------------------------------------

func (a *Assembler) handleOrg() bool {
	v, ok := a.parseExpr()
	if !ok {
		a.errorf("invalid ORG expression")
		return false
	}
	if !v.known && a.pass == passEmit {
		a.errorf("ORG value must be known")
		return false
	}
	a.pc = uint32(v.val)
	a.origin = uint32(v.val)
	a.setOutputBase(a.origin)
	return true
}

func (a *Assembler) handleAlign() bool {
	v, ok := a.parseExpr()
	if !ok {
		a.errorf("invalid ALIGN expression")
		return false
	}
	boundary := v.val
	if boundary <= 0 || boundary&(boundary-1) != 0 {
		a.errorf("ALIGN boundary must be a power of 2")
		return false
	}
	mask := uint32(boundary) - 1
	padding := (uint32(boundary) - (a.pc & mask)) & mask
	a.emitFill(int64(padding), 0)
	return true
}

// ---------------------------------------------------------------------
// Symbol definition
// ---------------------------------------------------------------------

func (a *Assembler) handleEqu(label string) bool {
	if label == "" {
		a.errorf("EQU requires a label")
		return false
	}
	v, ok := a.parseExpr()
	if !ok {
		a.errorf("invalid EQU expression")
		return false
	}
	a.defineSymbol(label, SymEqu, v.val)
	return true
}

func (a *Assembler) handleSet(label string) bool {
	if label == "" {
		a.errorf("SET requires a label")
		return false
	}
	v, ok := a.parseExpr()
	if !ok {
		a.errorf("invalid SET expression")
		return false
	}
	a.defineSymbol(label, SymSet, v.val)
	return true
}

// ---------------------------------------------------------------------
// Data definition
// ---------------------------------------------------------------------

func (a *Assembler) handleDb() bool {
	for {
		tok := a.lex.Peek()

		switch tok.Type {
		case TokString, TokChar:
			a.lex.Next()
			a.emitString(tok.Text)
		default:
			v, ok := a.parseExpr()
			if !ok {
				a.errorf("invalid DB expression")
				return false
			}
			a.emitByte(byte(v.val))
		}

		if a.lex.Peek().Type != TokComma {
			return true
		}
		a.lex.Next()
	}
}

func (a *Assembler) handleDw() bool {
	for {
		v, ok := a.parseExpr()
		if !ok {
			a.errorf("invalid DW expression")
			return false
		}
		a.emitWord(uint16(v.val))

		if a.lex.Peek().Type != TokComma {
			return true
		}
		a.lex.Next()
	}
}

func (a *Assembler) handleDd() bool {
	for {
		v, ok := a.parseExpr()
		if !ok {
			a.errorf("invalid DD expression")
			return false
		}
		a.emitLong(uint32(v.val))

		if a.lex.Peek().Type != TokComma {
			return true
		}
		a.lex.Next()
	}
}

func (a *Assembler) handleDs() bool {
	v, ok := a.parseExpr()
	if !ok {
		a.errorf("invalid DS expression")
		return false
	}
	count := v.val
	if count < 0 {
		a.errorf("DS count must be non-negative")
		return false
	}

	fill := byte(0)
	if a.lex.Peek().Type == TokComma {
		a.lex.Next()
		fv, ok := a.parseExpr()
		if !ok {
			a.errorf("invalid DS fill value")
			return false
		}
		fill = byte(fv.val)
	}

	a.emitFill(count, fill)
	return true
}

// ---------------------------------------------------------------------
// File inclusion
// ---------------------------------------------------------------------

// parseFilenameArg accepts a quoted or unquoted filename argument.
func (a *Assembler) parseFilenameArg() string {
	tok := a.lex.Peek()
	if tok.Type == TokString || tok.Type == TokChar {
		a.lex.Next()
		return tok.Text
	}

	var sb strings.Builder
	for {
		tok = a.lex.Peek()
		if tok.Type == TokComma || tok.Type == TokNewline || tok.Type == TokEOF {
			break
		}
		a.lex.Next()
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func (a *Assembler) handleInclude() bool {
	filename := a.parseFilenameArg()
	if filename == "" {
		a.errorf("INCLUDE requires a filename")
		return false
	}
	return a.includeFile(filename)
}

func (a *Assembler) handleBinclude() bool {
	filename := a.parseFilenameArg()
	if filename == "" {
		a.errorf("BINCLUDE requires a filename")
		return false
	}

	offset := int64(0)
	length := int64(-1)

	if a.lex.Peek().Type == TokComma {
		a.lex.Next()
		v, ok := a.parseExpr()
		if !ok {
			a.errorf("invalid BINCLUDE offset")
			return false
		}
		offset = v.val

		if a.lex.Peek().Type == TokComma {
			a.lex.Next()
			v, ok := a.parseExpr()
			if !ok {
				a.errorf("invalid BINCLUDE length")
				return false
			}
			length = v.val
		}
	}

	path := a.resolvePath(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		a.errorf("cannot open binary file '%s'", path)
		return false
	}

	size := int64(len(data))
	if offset >= size {
		a.errorf("BINCLUDE offset beyond file size")
		return false
	}
	if length < 0 || offset+length > size {
		length = size - offset
	}

	for _, b := range data[offset : offset+length] {
		a.emitByte(b)
	}
	return true
}

// ---------------------------------------------------------------------
// Processor settings
// ---------------------------------------------------------------------

func (a *Assembler) handleCpu() bool {
	tok := a.lex.Next()
	if tok.Type != TokIdent && tok.Type != TokNumber {
		a.errorf("CPU requires a processor name")
		return false
	}

	name := strings.ToUpper(tok.Text)
	switch {
	case name == "TLCS900", name == "TMP94C241", name == "TLCS-900",
		name == "TLCS900H", name == "TLCS900/H",
		strings.HasPrefix(name, "900"):
		return true
	}

	a.warnf("unknown CPU '%s', assuming TLCS-900", tok.Text)
	return true
}

func (a *Assembler) handleMaxmode() bool {
	tok := a.lex.Peek()
	if tok.Type == TokIdent {
		a.lex.Next()
		switch strings.ToUpper(tok.Text) {
		case "ON":
			a.maxMode = true
		case "OFF":
			a.maxMode = false
		default:
			a.errorf("MAXMODE expects ON or OFF")
			return false
		}
		return true
	}
	a.maxMode = true
	return true
}
