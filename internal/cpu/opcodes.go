package cpu

// initInstructions populates the opcode dispatch table. Bytes not defined
// here (including the twelve NMOS "JAM" opcodes and the handful of unstable
// illegal opcodes with no consistent documented behavior) are left nil and
// fail as UnknownOpcode if fetched (spec.md §4.3).
func (c *CPU) initInstructions() {
	def := func(op uint8, name string, mode AddressingMode, bytes, cycles uint8, pageCrossPenalty bool) {
		c.instructions[op] = &Instruction{Name: name, Opcode: op, Bytes: bytes, Cycles: cycles, Mode: mode, PageCrossPenalty: pageCrossPenalty}
	}

	// Row 0x0_
	def(0x00, "BRK", Implied, 1, 7, false)
	def(0x01, "ORA", IndexedIndirect, 2, 6, false)
	def(0x03, "SLO", IndexedIndirect, 2, 8, false)
	def(0x04, "IGN", ZeroPage, 2, 3, false)
	def(0x05, "ORA", ZeroPage, 2, 3, false)
	def(0x06, "ASL", ZeroPage, 2, 5, false)
	def(0x07, "SLO", ZeroPage, 2, 5, false)
	def(0x08, "PHP", Implied, 1, 3, false)
	def(0x09, "ORA", Immediate, 2, 2, false)
	def(0x0a, "ASL", Accumulator, 1, 2, false)
	def(0x0b, "ANC", Immediate, 2, 2, false)
	def(0x0c, "IGN", Absolute, 3, 4, false)
	def(0x0d, "ORA", Absolute, 3, 4, false)
	def(0x0e, "ASL", Absolute, 3, 6, false)
	def(0x0f, "SLO", Absolute, 3, 6, false)

	// Row 0x1_
	def(0x10, "BPL", Relative, 2, 2, false)
	def(0x11, "ORA", IndirectIndexed, 2, 5, true)
	def(0x13, "SLO", IndirectIndexed, 2, 8, false)
	def(0x14, "IGN", ZeroPageX, 2, 4, false)
	def(0x15, "ORA", ZeroPageX, 2, 4, false)
	def(0x16, "ASL", ZeroPageX, 2, 6, false)
	def(0x17, "SLO", ZeroPageX, 2, 6, false)
	def(0x18, "CLC", Implied, 1, 2, false)
	def(0x19, "ORA", AbsoluteY, 3, 4, true)
	def(0x1a, "NOP", Implied, 1, 2, false)
	def(0x1b, "SLO", AbsoluteY, 3, 7, false)
	def(0x1c, "IGN", AbsoluteX, 3, 4, true)
	def(0x1d, "ORA", AbsoluteX, 3, 4, true)
	def(0x1e, "ASL", AbsoluteX, 3, 7, false)
	def(0x1f, "SLO", AbsoluteX, 3, 7, false)

	// Row 0x2_
	def(0x20, "JSR", Absolute, 3, 6, false)
	def(0x21, "AND", IndexedIndirect, 2, 6, false)
	def(0x23, "RLA", IndexedIndirect, 2, 8, false)
	def(0x24, "BIT", ZeroPage, 2, 3, false)
	def(0x25, "AND", ZeroPage, 2, 3, false)
	def(0x26, "ROL", ZeroPage, 2, 5, false)
	def(0x27, "RLA", ZeroPage, 2, 5, false)
	def(0x28, "PLP", Implied, 1, 4, false)
	def(0x29, "AND", Immediate, 2, 2, false)
	def(0x2a, "ROL", Accumulator, 1, 2, false)
	def(0x2b, "ANC", Immediate, 2, 2, false)
	def(0x2c, "BIT", Absolute, 3, 4, false)
	def(0x2d, "AND", Absolute, 3, 4, false)
	def(0x2e, "ROL", Absolute, 3, 6, false)
	def(0x2f, "RLA", Absolute, 3, 6, false)

	// Row 0x3_
	def(0x30, "BMI", Relative, 2, 2, false)
	def(0x31, "AND", IndirectIndexed, 2, 5, true)
	def(0x33, "RLA", IndirectIndexed, 2, 8, false)
	def(0x34, "IGN", ZeroPageX, 2, 4, false)
	def(0x35, "AND", ZeroPageX, 2, 4, false)
	def(0x36, "ROL", ZeroPageX, 2, 6, false)
	def(0x37, "RLA", ZeroPageX, 2, 6, false)
	def(0x38, "SEC", Implied, 1, 2, false)
	def(0x39, "AND", AbsoluteY, 3, 4, true)
	def(0x3a, "NOP", Implied, 1, 2, false)
	def(0x3b, "RLA", AbsoluteY, 3, 7, false)
	def(0x3c, "IGN", AbsoluteX, 3, 4, true)
	def(0x3d, "AND", AbsoluteX, 3, 4, true)
	def(0x3e, "ROL", AbsoluteX, 3, 7, false)
	def(0x3f, "RLA", AbsoluteX, 3, 7, false)

	// Row 0x4_
	def(0x40, "RTI", Implied, 1, 6, false)
	def(0x41, "EOR", IndexedIndirect, 2, 6, false)
	def(0x43, "SRE", IndexedIndirect, 2, 8, false)
	def(0x44, "IGN", ZeroPage, 2, 3, false)
	def(0x45, "EOR", ZeroPage, 2, 3, false)
	def(0x46, "LSR", ZeroPage, 2, 5, false)
	def(0x47, "SRE", ZeroPage, 2, 5, false)
	def(0x48, "PHA", Implied, 1, 3, false)
	def(0x49, "EOR", Immediate, 2, 2, false)
	def(0x4a, "LSR", Accumulator, 1, 2, false)
	def(0x4b, "ALR", Immediate, 2, 2, false)
	def(0x4c, "JMP", Absolute, 3, 3, false)
	def(0x4d, "EOR", Absolute, 3, 4, false)
	def(0x4e, "LSR", Absolute, 3, 6, false)
	def(0x4f, "SRE", Absolute, 3, 6, false)

	// Row 0x5_
	def(0x50, "BVC", Relative, 2, 2, false)
	def(0x51, "EOR", IndirectIndexed, 2, 5, true)
	def(0x53, "SRE", IndirectIndexed, 2, 8, false)
	def(0x54, "IGN", ZeroPageX, 2, 4, false)
	def(0x55, "EOR", ZeroPageX, 2, 4, false)
	def(0x56, "LSR", ZeroPageX, 2, 6, false)
	def(0x57, "SRE", ZeroPageX, 2, 6, false)
	def(0x58, "CLI", Implied, 1, 2, false)
	def(0x59, "EOR", AbsoluteY, 3, 4, true)
	def(0x5a, "NOP", Implied, 1, 2, false)
	def(0x5b, "SRE", AbsoluteY, 3, 7, false)
	def(0x5c, "IGN", AbsoluteX, 3, 4, true)
	def(0x5d, "EOR", AbsoluteX, 3, 4, true)
	def(0x5e, "LSR", AbsoluteX, 3, 7, false)
	def(0x5f, "SRE", AbsoluteX, 3, 7, false)

	// Row 0x6_
	def(0x60, "RTS", Implied, 1, 6, false)
	def(0x61, "ADC", IndexedIndirect, 2, 6, false)
	def(0x63, "RRA", IndexedIndirect, 2, 8, false)
	def(0x64, "IGN", ZeroPage, 2, 3, false)
	def(0x65, "ADC", ZeroPage, 2, 3, false)
	def(0x66, "ROR", ZeroPage, 2, 5, false)
	def(0x67, "RRA", ZeroPage, 2, 5, false)
	def(0x68, "PLA", Implied, 1, 4, false)
	def(0x69, "ADC", Immediate, 2, 2, false)
	def(0x6a, "ROR", Accumulator, 1, 2, false)
	def(0x6b, "ARR", Immediate, 2, 2, false)
	def(0x6c, "JMP", Indirect, 3, 5, false)
	def(0x6d, "ADC", Absolute, 3, 4, false)
	def(0x6e, "ROR", Absolute, 3, 6, false)
	def(0x6f, "RRA", Absolute, 3, 6, false)

	// Row 0x7_
	def(0x70, "BVS", Relative, 2, 2, false)
	def(0x71, "ADC", IndirectIndexed, 2, 5, true)
	def(0x73, "RRA", IndirectIndexed, 2, 8, false)
	def(0x74, "IGN", ZeroPageX, 2, 4, false)
	def(0x75, "ADC", ZeroPageX, 2, 4, false)
	def(0x76, "ROR", ZeroPageX, 2, 6, false)
	def(0x77, "RRA", ZeroPageX, 2, 6, false)
	def(0x78, "SEI", Implied, 1, 2, false)
	def(0x79, "ADC", AbsoluteY, 3, 4, true)
	def(0x7a, "NOP", Implied, 1, 2, false)
	def(0x7b, "RRA", AbsoluteY, 3, 7, false)
	def(0x7c, "IGN", AbsoluteX, 3, 4, true)
	def(0x7d, "ADC", AbsoluteX, 3, 4, true)
	def(0x7e, "ROR", AbsoluteX, 3, 7, false)
	def(0x7f, "RRA", AbsoluteX, 3, 7, false)

	// Row 0x8_
	def(0x80, "SKB", Immediate, 2, 2, false)
	def(0x81, "STA", IndexedIndirect, 2, 6, false)
	def(0x82, "SKB", Immediate, 2, 2, false)
	def(0x83, "SAX", IndexedIndirect, 2, 6, false)
	def(0x84, "STY", ZeroPage, 2, 3, false)
	def(0x85, "STA", ZeroPage, 2, 3, false)
	def(0x86, "STX", ZeroPage, 2, 3, false)
	def(0x87, "SAX", ZeroPage, 2, 3, false)
	def(0x88, "DEY", Implied, 1, 2, false)
	def(0x89, "SKB", Immediate, 2, 2, false)
	def(0x8a, "TXA", Implied, 1, 2, false)
	def(0x8c, "STY", Absolute, 3, 4, false)
	def(0x8d, "STA", Absolute, 3, 4, false)
	def(0x8e, "STX", Absolute, 3, 4, false)
	def(0x8f, "SAX", Absolute, 3, 4, false)

	// Row 0x9_
	def(0x90, "BCC", Relative, 2, 2, false)
	def(0x91, "STA", IndirectIndexed, 2, 6, false)
	def(0x94, "STY", ZeroPageX, 2, 4, false)
	def(0x95, "STA", ZeroPageX, 2, 4, false)
	def(0x96, "STX", ZeroPageY, 2, 4, false)
	def(0x97, "SAX", ZeroPageY, 2, 4, false)
	def(0x98, "TYA", Implied, 1, 2, false)
	def(0x99, "STA", AbsoluteY, 3, 5, false)
	def(0x9a, "TXS", Implied, 1, 2, false)
	def(0x9d, "STA", AbsoluteX, 3, 5, false)

	// Row 0xA_
	def(0xa0, "LDY", Immediate, 2, 2, false)
	def(0xa1, "LDA", IndexedIndirect, 2, 6, false)
	def(0xa2, "LDX", Immediate, 2, 2, false)
	def(0xa3, "LAX", IndexedIndirect, 2, 6, false)
	def(0xa4, "LDY", ZeroPage, 2, 3, false)
	def(0xa5, "LDA", ZeroPage, 2, 3, false)
	def(0xa6, "LDX", ZeroPage, 2, 3, false)
	def(0xa7, "LAX", ZeroPage, 2, 3, false)
	def(0xa8, "TAY", Implied, 1, 2, false)
	def(0xa9, "LDA", Immediate, 2, 2, false)
	def(0xaa, "TAX", Implied, 1, 2, false)
	def(0xac, "LDY", Absolute, 3, 4, false)
	def(0xad, "LDA", Absolute, 3, 4, false)
	def(0xae, "LDX", Absolute, 3, 4, false)
	def(0xaf, "LAX", Absolute, 3, 4, false)

	// Row 0xB_
	def(0xb0, "BCS", Relative, 2, 2, false)
	def(0xb1, "LDA", IndirectIndexed, 2, 5, true)
	def(0xb3, "LAX", IndirectIndexed, 2, 5, true)
	def(0xb4, "LDY", ZeroPageX, 2, 4, false)
	def(0xb5, "LDA", ZeroPageX, 2, 4, false)
	def(0xb6, "LDX", ZeroPageY, 2, 4, false)
	def(0xb7, "LAX", ZeroPageY, 2, 4, false)
	def(0xb8, "CLV", Implied, 1, 2, false)
	def(0xb9, "LDA", AbsoluteY, 3, 4, true)
	def(0xba, "TSX", Implied, 1, 2, false)
	def(0xbc, "LDY", AbsoluteX, 3, 4, true)
	def(0xbd, "LDA", AbsoluteX, 3, 4, true)
	def(0xbe, "LDX", AbsoluteY, 3, 4, true)
	def(0xbf, "LAX", AbsoluteY, 3, 4, true)

	// Row 0xC_
	def(0xc0, "CPY", Immediate, 2, 2, false)
	def(0xc1, "CMP", IndexedIndirect, 2, 6, false)
	def(0xc2, "SKB", Immediate, 2, 2, false)
	def(0xc3, "DCP", IndexedIndirect, 2, 8, false)
	def(0xc4, "CPY", ZeroPage, 2, 3, false)
	def(0xc5, "CMP", ZeroPage, 2, 3, false)
	def(0xc6, "DEC", ZeroPage, 2, 5, false)
	def(0xc7, "DCP", ZeroPage, 2, 5, false)
	def(0xc8, "INY", Implied, 1, 2, false)
	def(0xc9, "CMP", Immediate, 2, 2, false)
	def(0xca, "DEX", Implied, 1, 2, false)
	def(0xcb, "AXS", Immediate, 2, 2, false)
	def(0xcc, "CPY", Absolute, 3, 4, false)
	def(0xcd, "CMP", Absolute, 3, 4, false)
	def(0xce, "DEC", Absolute, 3, 6, false)
	def(0xcf, "DCP", Absolute, 3, 6, false)

	// Row 0xD_
	def(0xd0, "BNE", Relative, 2, 2, false)
	def(0xd1, "CMP", IndirectIndexed, 2, 5, true)
	def(0xd3, "DCP", IndirectIndexed, 2, 8, false)
	def(0xd4, "IGN", ZeroPageX, 2, 4, false)
	def(0xd5, "CMP", ZeroPageX, 2, 4, false)
	def(0xd6, "DEC", ZeroPageX, 2, 6, false)
	def(0xd7, "DCP", ZeroPageX, 2, 6, false)
	def(0xd8, "CLD", Implied, 1, 2, false)
	def(0xd9, "CMP", AbsoluteY, 3, 4, true)
	def(0xda, "NOP", Implied, 1, 2, false)
	def(0xdb, "DCP", AbsoluteY, 3, 7, false)
	def(0xdc, "IGN", AbsoluteX, 3, 4, true)
	def(0xdd, "CMP", AbsoluteX, 3, 4, true)
	def(0xde, "DEC", AbsoluteX, 3, 7, false)
	def(0xdf, "DCP", AbsoluteX, 3, 7, false)

	// Row 0xE_
	def(0xe0, "CPX", Immediate, 2, 2, false)
	def(0xe1, "SBC", IndexedIndirect, 2, 6, false)
	def(0xe2, "SKB", Immediate, 2, 2, false)
	def(0xe3, "ISC", IndexedIndirect, 2, 8, false)
	def(0xe4, "CPX", ZeroPage, 2, 3, false)
	def(0xe5, "SBC", ZeroPage, 2, 3, false)
	def(0xe6, "INC", ZeroPage, 2, 5, false)
	def(0xe7, "ISC", ZeroPage, 2, 5, false)
	def(0xe8, "INX", Implied, 1, 2, false)
	def(0xe9, "SBC", Immediate, 2, 2, false)
	def(0xea, "NOP", Implied, 1, 2, false)
	def(0xeb, "SBC", Immediate, 2, 2, false)
	def(0xec, "CPX", Absolute, 3, 4, false)
	def(0xed, "SBC", Absolute, 3, 4, false)
	def(0xee, "INC", Absolute, 3, 6, false)
	def(0xef, "ISC", Absolute, 3, 6, false)

	// Row 0xF_
	def(0xf0, "BEQ", Relative, 2, 2, false)
	def(0xf1, "SBC", IndirectIndexed, 2, 5, true)
	def(0xf3, "ISC", IndirectIndexed, 2, 8, false)
	def(0xf4, "IGN", ZeroPageX, 2, 4, false)
	def(0xf5, "SBC", ZeroPageX, 2, 4, false)
	def(0xf6, "INC", ZeroPageX, 2, 6, false)
	def(0xf7, "ISC", ZeroPageX, 2, 6, false)
	def(0xf8, "SED", Implied, 1, 2, false)
	def(0xf9, "SBC", AbsoluteY, 3, 4, true)
	def(0xfa, "NOP", Implied, 1, 2, false)
	def(0xfb, "ISC", AbsoluteY, 3, 7, false)
	def(0xfc, "IGN", AbsoluteX, 3, 4, true)
	def(0xfd, "SBC", AbsoluteX, 3, 4, true)
	def(0xfe, "INC", AbsoluteX, 3, 7, false)
	def(0xff, "ISC", AbsoluteX, 3, 7, false)
}

// execute dispatches a decoded instruction. It returns any extra cycles
// beyond the table's base count (branch-taken/page-cross additions are
// handled for branches here; read-mode page-cross is handled by the
// caller via instr.PageCrossPenalty) and whether PC was set directly by
// the instruction (JMP/JSR/RTS/RTI/branches), in which case the caller
// skips the generic PC advance.
func (c *CPU) execute(instr *Instruction, address, operandStart uint16, pageCrossed bool) (extraCycles uint8, pcSet bool) {
	mode := instr.Mode

	switch instr.Name {
	case "LDA":
		c.A = c.readOperand(address, mode)
		c.setZN(c.A)
	case "LDX":
		c.X = c.readOperand(address, mode)
		c.setZN(c.X)
	case "LDY":
		c.Y = c.readOperand(address, mode)
		c.setZN(c.Y)
	case "STA":
		c.writeOperand(address, mode, c.A)
	case "STX":
		c.writeOperand(address, mode, c.X)
	case "STY":
		c.writeOperand(address, mode, c.Y)
	case "TAX":
		c.X = c.A
		c.setZN(c.X)
	case "TAY":
		c.Y = c.A
		c.setZN(c.Y)
	case "TXA":
		c.A = c.X
		c.setZN(c.A)
	case "TYA":
		c.A = c.Y
		c.setZN(c.A)
	case "TSX":
		c.X = c.SP
		c.setZN(c.X)
	case "TXS":
		c.SP = c.X

	case "PHA":
		c.push(c.A)
	case "PLA":
		c.A = c.pop()
		c.setZN(c.A)
	case "PHP":
		c.push(c.statusByte(true))
	case "PLP":
		c.setStatusByte(c.pop())

	case "AND":
		c.A &= c.readOperand(address, mode)
		c.setZN(c.A)
	case "ORA":
		c.A |= c.readOperand(address, mode)
		c.setZN(c.A)
	case "EOR":
		c.A ^= c.readOperand(address, mode)
		c.setZN(c.A)
	case "BIT":
		v := c.readOperand(address, mode)
		c.Z = (c.A & v) == 0
		c.N = v&0x80 != 0
		c.V = v&0x40 != 0

	case "ADC":
		c.adc(c.readOperand(address, mode))
	case "SBC":
		c.adc(c.readOperand(address, mode) ^ 0xff)

	case "CMP":
		c.compare(c.A, c.readOperand(address, mode))
	case "CPX":
		c.compare(c.X, c.readOperand(address, mode))
	case "CPY":
		c.compare(c.Y, c.readOperand(address, mode))

	case "INC":
		v := c.readOperand(address, mode) + 1
		c.writeOperand(address, mode, v)
		c.setZN(v)
	case "DEC":
		v := c.readOperand(address, mode) - 1
		c.writeOperand(address, mode, v)
		c.setZN(v)
	case "INX":
		c.X++
		c.setZN(c.X)
	case "INY":
		c.Y++
		c.setZN(c.Y)
	case "DEX":
		c.X--
		c.setZN(c.X)
	case "DEY":
		c.Y--
		c.setZN(c.Y)

	case "ASL":
		v := c.asl(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
	case "LSR":
		v := c.lsr(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
	case "ROL":
		v := c.rol(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
	case "ROR":
		v := c.ror(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)

	case "CLC":
		c.C = false
	case "SEC":
		c.C = true
	case "CLI":
		c.I = false
	case "SEI":
		c.I = true
	case "CLD":
		c.D = false
	case "SED":
		c.D = true
	case "CLV":
		c.V = false

	case "BCC":
		return c.branch(!c.C, operandStart)
	case "BCS":
		return c.branch(c.C, operandStart)
	case "BEQ":
		return c.branch(c.Z, operandStart)
	case "BNE":
		return c.branch(!c.Z, operandStart)
	case "BMI":
		return c.branch(c.N, operandStart)
	case "BPL":
		return c.branch(!c.N, operandStart)
	case "BVC":
		return c.branch(!c.V, operandStart)
	case "BVS":
		return c.branch(c.V, operandStart)

	case "JMP":
		c.PC = address
		return 0, true
	case "JSR":
		c.pushWord(operandStart + 1)
		c.PC = address
		return 0, true
	case "RTS":
		c.PC = c.popWord() + 1
		return 0, true
	case "RTI":
		c.setStatusByte(c.pop())
		c.PC = c.popWord()
		return 0, true
	case "BRK":
		// c.PC already equals (opcode-fetch PC)+1 at this point, i.e.
		// spec.md's "PC+1" (spec.md §4.3, §9).
		c.pushWord(c.PC)
		c.push(c.statusByte(true))
		c.I = true
		c.PC = c.read16(0xfffe)
		return 0, true

	case "NOP", "SKB", "IGN":
		if mode != Implied {
			_ = c.readOperand(address, mode) // read and discard
		}

	// Unofficial composites (spec.md §4.3).
	case "LAX":
		c.A = c.readOperand(address, mode)
		c.X = c.A
		c.setZN(c.A)
	case "SAX":
		c.writeOperand(address, mode, c.A&c.X)
	case "DCP":
		v := c.readOperand(address, mode) - 1
		c.writeOperand(address, mode, v)
		c.compare(c.A, v)
	case "ISC":
		v := c.readOperand(address, mode) + 1
		c.writeOperand(address, mode, v)
		c.adc(v ^ 0xff)
	case "SLO":
		v := c.asl(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
		c.A |= v
		c.setZN(c.A)
	case "RLA":
		v := c.rol(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
		c.A &= v
		c.setZN(c.A)
	case "SRE":
		v := c.lsr(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
		c.A ^= v
		c.setZN(c.A)
	case "RRA":
		v := c.ror(c.readOperand(address, mode))
		c.writeOperand(address, mode, v)
		c.adc(v)
	case "ALR":
		t := c.A & c.readOperand(address, mode)
		c.A = c.lsr(t)
	case "ANC":
		c.A &= c.readOperand(address, mode)
		c.setZN(c.A)
		c.C = c.N
	case "ARR":
		t := c.A & c.readOperand(address, mode)
		carryIn := b2u(c.C)
		result := (t >> 1) | (carryIn << 7)
		c.A = result
		c.setZN(result)
		c.C = result&0x40 != 0
		c.V = ((result>>6)^(result>>5))&1 != 0
	case "AXS":
		t := c.A & c.X
		v := c.readOperand(address, mode)
		c.C = t >= v
		c.X = t - v
		c.setZN(c.X)

	default:
		c.fail("unimplemented mnemonic %s", instr.Name)
	}

	return 0, false
}

func (c *CPU) adc(value uint8) {
	sum := uint16(c.A) + uint16(value) + uint16(b2u(c.C))
	result := uint8(sum)
	c.V = (c.A^result)&(value^result)&0x80 != 0
	c.C = sum > 0xff
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg, value uint8) {
	c.C = reg >= value
	c.setZN(reg - value)
}

func (c *CPU) asl(v uint8) uint8 {
	c.C = v&0x80 != 0
	r := v << 1
	c.setZN(r)
	return r
}

func (c *CPU) lsr(v uint8) uint8 {
	c.C = v&0x01 != 0
	r := v >> 1
	c.setZN(r)
	return r
}

func (c *CPU) rol(v uint8) uint8 {
	carryIn := b2u(c.C)
	c.C = v&0x80 != 0
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}

func (c *CPU) ror(v uint8) uint8 {
	carryIn := b2u(c.C)
	c.C = v&0x01 != 0
	r := (v >> 1) | (carryIn << 7)
	c.setZN(r)
	return r
}
