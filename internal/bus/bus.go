// Package bus routes CPU reads/writes to WRAM, PPU registers, and program
// ROM, advances the PPU in lockstep with the CPU clock, and serves OAM DMA.
package bus

import (
	"fmt"

	"nescore/internal/cartridge"
	"nescore/internal/ppu"
)

// WritableCartridge is the subset of *cartridge.Cartridge the Bus needs.
type WritableCartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8) error
}

// PPUPort is the subset of *ppu.PPU the Bus drives directly.
type PPUPort interface {
	Tick(cycles int)
	ReadRegister(index uint16) uint8
	WriteRegister(index uint16, value uint8)
	WriteOAM(index uint8, value uint8)
	ConsumeNMI() bool
	Reset()
}

// Bus is the CPU-visible 16-bit address space: 2KiB WRAM mirrored through
// 8KiB, eight PPU registers mirrored through 8KiB, and program ROM.
type Bus struct {
	wram      [0x800]uint8
	ppu       PPUPort
	cartridge WritableCartridge

	cycles uint64
}

// New creates a Bus wired to the given cartridge and PPU. Per spec.md §9,
// the Bus never holds a reference back to the CPU.
func New(cart *cartridge.Cartridge, p *ppu.PPU) *Bus {
	return &Bus{cartridge: cart, ppu: p}
}

// Reset returns bus-owned state (WRAM, cycle counter, PPU) to power-up.
func (b *Bus) Reset() {
	b.wram = [0x800]uint8{}
	b.cycles = 0
	b.ppu.Reset()
}

// Cycles returns the total CPU cycles ticked so far.
func (b *Bus) Cycles() uint64 { return b.cycles }

// ReadByte dispatches a CPU read by address range (spec.md §3 memory map).
func (b *Bus) ReadByte(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.wram[addr%0x0800]
	case addr < 0x4000:
		return b.ppu.ReadRegister((addr - 0x2000) % 8)
	case addr == 0x4014:
		return 0 // OAMDMA is write-only
	case addr < 0x8000:
		return 0 // not modeled; unmapped reads return 0
	default:
		return b.cartridge.ReadPRG(addr)
	}
}

// WriteByte dispatches a CPU write by address range. Writes to program ROM
// return a non-nil error: spec.md §4.1/§4.3 mark these fatal, and it is the
// CPU's responsibility to halt execution on a non-nil return.
func (b *Bus) WriteByte(addr uint16, value uint8) error {
	switch {
	case addr < 0x2000:
		b.wram[addr%0x0800] = value
		return nil
	case addr < 0x4000:
		b.ppu.WriteRegister((addr-0x2000)%8, value)
		return nil
	case addr == 0x4014:
		b.startOAMDMA(value)
		return nil
	case addr < 0x8000:
		return nil // unmapped, silently ignored
	default:
		if err := b.cartridge.WritePRG(addr, value); err != nil {
			return fmt.Errorf("bus: %w", err)
		}
		return nil
	}
}

// ReadWord reads a little-endian 16-bit word via two byte reads.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return lo | hi<<8
}

// WriteWord writes a little-endian 16-bit word via two byte writes.
func (b *Bus) WriteWord(addr uint16, value uint16) error {
	if err := b.WriteByte(addr, uint8(value&0xff)); err != nil {
		return err
	}
	return b.WriteByte(addr+1, uint8(value>>8))
}

// Tick advances the bus clock by n CPU cycles, ticking the PPU by 3n PPU
// cycles (spec.md §4.1). The frame-complete callback, if any, fires from
// inside ppu.Tick.
func (b *Bus) Tick(n int) {
	b.cycles += uint64(n)
	b.ppu.Tick(n * 3)
}

// PollNMI returns and consumes any NMI latched by the PPU since the last
// poll. The CPU calls this immediately before each instruction fetch.
func (b *Bus) PollNMI() bool {
	return b.ppu.ConsumeNMI()
}

// startOAMDMA begins a synchronous 256-byte transfer from page
// value<<8 into OAM memory. Cost is 513 CPU cycles, or 514 when the
// transfer begins on an odd CPU cycle (spec.md §9's 513-cycle baseline,
// refined with the even/odd parity the teacher's bus.go applies —
// documented in DESIGN.md).
func (b *Bus) startOAMDMA(page uint8) {
	for i := 0; i < 256; i++ {
		value := b.ReadByte(uint16(page)<<8 | uint16(i))
		b.ppu.WriteOAM(uint8(i), value)
	}
	cost := 513
	if b.cycles%2 != 0 {
		cost = 514
	}
	b.Tick(cost)
}
