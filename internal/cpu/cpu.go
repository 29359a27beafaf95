// Package cpu implements the 6502 CPU: register file, opcode dispatch
// table, addressing modes, and the fetch-decode-execute loop that drives
// the Bus and services NMI.
package cpu

import "fmt"

// Bus is the subset of *bus.Bus the CPU needs. Defined locally (rather than
// imported) so the CPU owns the Bus exclusively and the Bus never needs to
// know about the CPU (spec.md §9).
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8) error
	Tick(cycles int)
	PollNMI() bool
}

// AddressingMode identifies how an opcode's operand resolves to an
// effective address.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// Instruction is one row of the opcode dispatch table.
type Instruction struct {
	Name             string
	Opcode           uint8
	Bytes            uint8
	Cycles           uint8
	Mode             AddressingMode
	PageCrossPenalty bool
}

// FatalError reports an unknown opcode or a write to cartridge ROM
// (spec.md §7, "Fatal" error kind): the core stops the execution loop with
// a diagnostic identifying opcode/address/PC.
type FatalError struct {
	Reason string
	PC     uint16
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("cpu: %s (PC=0x%04X)", e.Reason, e.PC)
}

// InstrumentationCallback is invoked at the top of every Step, before NMI
// polling and fetch, with mutable access to the CPU (spec.md §6).
type InstrumentationCallback func(*CPU)

// CPU owns the register file and exclusive access to the Bus.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	// Status flags, stored individually rather than as a packed byte
	// (spec.md §9 permits either representation). B does not live here: it
	// is synthesized at push time depending on the cause (see statusByte).
	C, Z, I, D, V, N bool

	bus          Bus
	instructions [256]*Instruction

	halted  bool
	lastErr error

	instrumentation InstrumentationCallback
}

// New creates a CPU wired to bus and performs the initial reset (spec.md
// §6: the reset vector is read "at construction and reset").
func New(bus Bus) *CPU {
	c := &CPU{bus: bus, SP: 0xfd}
	c.initInstructions()
	c.Reset()
	return c
}

// SetInstrumentation installs an optional per-step instrumentation hook.
func (c *CPU) SetInstrumentation(cb InstrumentationCallback) {
	c.instrumentation = cb
}

// Reset returns the CPU to its power-up state: A=X=Y=0, SP=0xFD,
// P=R|I (0x24), PC loaded from the reset vector at 0xFFFC.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xfd
	c.C, c.Z, c.D, c.V, c.N = false, false, false, false, false
	c.I = true
	c.halted = false
	c.lastErr = nil
	c.PC = c.read16(0xfffc)
	c.bus.Tick(7)
}

// Halted reports whether a fatal error has stopped the execution loop.
func (c *CPU) Halted() bool { return c.halted }

// Err returns the fatal error that halted execution, if any.
func (c *CPU) Err() error { return c.lastErr }

func (c *CPU) fail(format string, args ...interface{}) {
	c.halted = true
	c.lastErr = &FatalError{Reason: fmt.Sprintf(format, args...), PC: c.PC}
}

// Step executes exactly one pass of the execution loop (spec.md §4.3
// "Execution loop (design)"): instrumentation, NMI poll/service, then one
// instruction fetch-decode-execute. It returns the halting error once the
// CPU has failed; callers should stop calling Step after that.
func (c *CPU) Step() error {
	if c.halted {
		return c.lastErr
	}

	if c.instrumentation != nil {
		c.instrumentation(c)
	}

	if c.bus.PollNMI() {
		c.serviceNMI()
	}

	opcode := c.read8(c.PC)
	c.PC++

	instr := c.instructions[opcode]
	if instr == nil {
		c.fail("unknown opcode 0x%02X", opcode)
		return c.lastErr
	}

	operandStart := c.PC
	address, pageCrossed := c.operandAddress(instr.Mode)

	extraCycles, pcSet := c.execute(instr, address, operandStart, pageCrossed)
	if c.halted {
		return c.lastErr
	}

	if !pcSet {
		c.PC = operandStart + uint16(instr.Bytes) - 1
	}

	cycles := instr.Cycles
	if pageCrossed && instr.PageCrossPenalty {
		cycles++
	}
	cycles += extraCycles

	c.bus.Tick(int(cycles))
	return nil
}

// serviceNMI pushes PC and status (B cleared, R set), disables further IRQs,
// and loads PC from the NMI vector (spec.md §4.3 "NMI service").
func (c *CPU) serviceNMI() {
	c.pushWord(c.PC)
	c.push(c.statusByte(false))
	c.I = true
	c.bus.Tick(2)
	c.PC = c.read16(0xfffa)
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.bus.ReadByte(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.ReadByte(addr))
	hi := uint16(c.bus.ReadByte(addr + 1))
	return lo | hi<<8
}

func (c *CPU) write8(addr uint16, value uint8) {
	if err := c.bus.WriteByte(addr, value); err != nil {
		c.fail("%v", err)
	}
}

// readOperand fetches the byte an instruction operates on, honoring
// Accumulator mode where the "address" is the A register itself.
func (c *CPU) readOperand(address uint16, mode AddressingMode) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.read8(address)
}

func (c *CPU) writeOperand(address uint16, mode AddressingMode, value uint8) {
	if mode == Accumulator {
		c.A = value
		return
	}
	c.write8(address, value)
}

// push writes a byte to the stack (page 0x01) then decrements SP.
func (c *CPU) push(value uint8) {
	c.write8(0x0100+uint16(c.SP), value)
	c.SP--
}

// pop increments SP then reads the byte at the new top of stack.
func (c *CPU) pop() uint8 {
	c.SP++
	return c.read8(0x0100 + uint16(c.SP))
}

// pushWord stores the high byte first so pop reads the low byte first,
// matching the 6502 little-endian stack layout (spec.md §4.3).
func (c *CPU) pushWord(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

// statusByte packs the flags into P. R always reads as 1; B is synthetic
// and supplied by the caller per spec.md §9 (PHP/BRK push B=1, hardware
// interrupts push B=0).
func (c *CPU) statusByte(breakBit bool) uint8 {
	var p uint8
	if c.N {
		p |= 0x80
	}
	if c.V {
		p |= 0x40
	}
	p |= 0x20 // R, always 1
	if breakBit {
		p |= 0x10
	}
	if c.D {
		p |= 0x08
	}
	if c.I {
		p |= 0x04
	}
	if c.Z {
		p |= 0x02
	}
	if c.C {
		p |= 0x01
	}
	return p
}

// setStatusByte restores flags from a popped P byte. B and R are not
// stored: R always reads 1 via statusByte regardless of what was popped
// (spec.md §9, PLP/RTI "ignore the B-bit and set R=1 on pop").
func (c *CPU) setStatusByte(value uint8) {
	c.N = value&0x80 != 0
	c.V = value&0x40 != 0
	c.D = value&0x08 != 0
	c.I = value&0x04 != 0
	c.Z = value&0x02 != 0
	c.C = value&0x01 != 0
}

// StatusByte exposes the live status register (with R forced to 1 and B
// synthesized as 0, since B has no live value) for tests and instrumentation.
func (c *CPU) StatusByte() uint8 { return c.statusByte(false) }

func (c *CPU) setZN(value uint8) {
	c.Z = value == 0
	c.N = value&0x80 != 0
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// operandAddress resolves the effective address (or, for modes that don't
// use one, an address the caller ignores) per spec.md §4.3. It never
// advances PC: the caller advances PC by (Bytes-1) after execute, except
// for control-flow instructions that set PC directly.
func (c *CPU) operandAddress(mode AddressingMode) (address uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false
	case Immediate, Relative:
		return c.PC, false
	case ZeroPage:
		return uint16(c.read8(c.PC)), false
	case ZeroPageX:
		return uint16(uint8(c.read8(c.PC) + c.X)), false
	case ZeroPageY:
		return uint16(uint8(c.read8(c.PC) + c.Y)), false
	case Absolute:
		return c.read16(c.PC), false
	case AbsoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		return addr, (base & 0xff00) != (addr & 0xff00)
	case AbsoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		return addr, (base & 0xff00) != (addr & 0xff00)
	case Indirect:
		ptr := c.read16(c.PC)
		var lo, hi uint8
		lo = c.read8(ptr)
		if ptr&0x00ff == 0x00ff {
			// 6502 indirect-JMP page-boundary bug: the high byte wraps
			// within the same page instead of crossing into the next.
			hi = c.read8(ptr & 0xff00)
		} else {
			hi = c.read8(ptr + 1)
		}
		return uint16(lo) | uint16(hi)<<8, false
	case IndexedIndirect:
		zp := c.read8(c.PC)
		base := uint8(zp + c.X)
		lo := uint16(c.read8(uint16(base)))
		hi := uint16(c.read8(uint16(uint8(base + 1))))
		return lo | hi<<8, false
	case IndirectIndexed:
		zp := c.read8(c.PC)
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(uint8(zp + 1))))
		base := lo | hi<<8
		addr := base + uint16(c.Y)
		return addr, (base & 0xff00) != (addr & 0xff00)
	default:
		return 0, false
	}
}

// branch implements the shared taken/not-taken logic for the eight
// conditional branch opcodes.
func (c *CPU) branch(taken bool, operandStart uint16) (extraCycles uint8, pcSet bool) {
	if !taken {
		return 0, false
	}
	offset := int8(c.read8(operandStart))
	next := operandStart + 1
	target := uint16(int32(next) + int32(offset))
	extraCycles = 1
	if (next & 0xff00) != (target & 0xff00) {
		extraCycles++
	}
	c.PC = target
	return extraCycles, true
}
