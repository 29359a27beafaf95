// Package ppu implements the Picture Processing Unit: registers, VRAM and
// palette memory, and the scanline/dot cursor that raises NMI at vblank.
//
// Sprite and background pixel compositing are out of scope (spec.md §1
// Non-goals); this package only implements the VRAM/palette/register
// machinery needed to drive vblank/NMI timing and to serve $2007 reads and
// writes correctly.
package ppu

import "nescore/internal/cartridge"

// CHRMemory is the character-memory side of the cartridge, as consumed by
// the PPU for pattern-table reads/writes.
type CHRMemory interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	CHRBytes() []uint8
}

// Register bit layout, named for the bits spec.md §3 documents.
const (
	ctrlNMIEnable    = 1 << 7
	ctrlSpriteHeight = 1 << 5
	ctrlBGTable      = 1 << 4
	ctrlSpriteTable  = 1 << 3
	ctrlIncrement32  = 1 << 2
	ctrlBaseNTMask   = 0x03

	statusVBlank    = 1 << 7
	statusSprite0   = 1 << 6
	statusOverflow  = 1 << 5
)

// FrameView is the read-only handle passed to the host-supplied frame
// callback (spec.md §6): character ROM bytes, VRAM bytes, palette bytes,
// sprite memory bytes, and control/mask register snapshots. Valid only for
// the duration of the callback.
type FrameView struct {
	CharacterROM []uint8
	Nametables   []uint8
	Palette      []uint8
	OAM          []uint8
	Control      uint8
	Mask         uint8
	VBlank       bool
}

// FrameCallback is invoked once per completed frame from within Bus.Tick.
type FrameCallback func(FrameView)

// PPU owns character ROM access, 2KiB nametable VRAM, 256-byte OAM, 32-byte
// palette RAM, and the memory-mapped register file.
type PPU struct {
	chr    CHRMemory
	mirror cartridge.MirrorMode

	nametables [0x800]uint8
	paletteRAM [0x20]uint8
	oam        [0x100]uint8

	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	// v is the current VRAM address (14 bits); w is the shared write-twice
	// latch for $2005/$2006, named after the NESDev register convention
	// confirmed in original_source/nes_core/src/ppu.rs.
	v uint16
	w bool

	dataBuffer uint8

	scanline int
	dot      int

	nmiPending bool

	onFrame FrameCallback
}

// New creates a PPU wired to the cartridge's character memory and
// mirroring mode.
func New(chr CHRMemory, mirror cartridge.MirrorMode) *PPU {
	return &PPU{chr: chr, mirror: mirror}
}

// SetFrameCallback installs the per-frame callback invoked from Tick.
func (p *PPU) SetFrameCallback(cb FrameCallback) {
	p.onFrame = cb
}

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v = 0
	p.w = false
	p.dataBuffer = 0
	p.scanline = 0
	p.dot = 0
	p.nmiPending = false
}

// Tick advances the PPU by k PPU cycles (spec.md §4.2 tick algorithm),
// raising the NMI latch on vblank entry and invoking the frame callback
// when a frame completes.
func (p *PPU) Tick(k int) {
	for i := 0; i < k; i++ {
		p.dot++
		if p.dot >= 341 {
			p.dot -= 341
			p.scanline++

			if p.scanline == 241 {
				p.status |= statusVBlank
				if p.ctrl&ctrlNMIEnable != 0 {
					p.nmiPending = true
				}
			}

			if p.scanline == 262 {
				p.scanline = 0
				p.status &^= statusVBlank
				p.status &^= statusSprite0
				p.nmiPending = false
				if p.onFrame != nil {
					p.onFrame(p.frameView())
				}
			}
		}
	}
}

func (p *PPU) frameView() FrameView {
	return FrameView{
		CharacterROM: p.chr.CHRBytes(),
		Nametables:   p.nametables[:],
		Palette:      p.paletteRAM[:],
		OAM:          p.oam[:],
		Control:      p.ctrl,
		Mask:         p.mask,
		VBlank:       p.status&statusVBlank != 0,
	}
}

// ConsumeNMI returns and clears any pending NMI latched at vblank entry.
// This is the method Bus.PollNMI calls.
func (p *PPU) ConsumeNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

func (p *PPU) addrIncrement() uint16 {
	if p.ctrl&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

// ReadRegister services a CPU read of one of the eight memory-mapped
// registers (index already reduced mod 8 by the Bus).
func (p *PPU) ReadRegister(index uint16) uint8 {
	switch index {
	case 2: // STATUS
		value := p.status
		p.status &^= statusVBlank
		p.w = false
		return value
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // DATA
		return p.readData()
	default:
		// Write-only registers read as an open-bus stand-in (spec.md §4.1).
		return 0
	}
}

// WriteRegister services a CPU write to one of the eight memory-mapped
// registers (index already reduced mod 8 by the Bus).
func (p *PPU) WriteRegister(index uint16, value uint8) {
	switch index {
	case 0: // CONTROL
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = value
		nowEnabled := p.ctrl&ctrlNMIEnable != 0
		if !wasEnabled && nowEnabled && p.status&statusVBlank != 0 {
			p.nmiPending = true
		}
	case 1: // MASK
		p.mask = value
	case 2: // STATUS is read-only; writes are ignored (spec.md §7 Recoverable).
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5: // SCROLL (write-twice; modeled as a simple latch, not required
		// for vblank-only operation per spec.md §3).
		p.w = !p.w
	case 6: // ADDRESS (write-twice)
		if !p.w {
			p.v = (p.v & 0x00ff) | (uint16(value&0x3f) << 8)
		} else {
			p.v = (p.v & 0xff00) | uint16(value)
		}
		p.v &= 0x3fff
		p.w = !p.w
	case 7: // DATA
		p.writeData(value)
	}
}

// WriteOAM writes directly to OAM memory at the given index, the target of
// $4014 OAM DMA.
func (p *PPU) WriteOAM(index uint8, value uint8) {
	p.oam[index] = value
}

func (p *PPU) readData() uint8 {
	addr := p.v & 0x3fff
	var value uint8
	if addr >= 0x3f00 {
		// Palette reads return the fresh value directly; the buffer is
		// still refilled from the underlying nametable mirror.
		value = p.readPalette(addr)
		p.dataBuffer = p.readVRAM(addr - 0x1000)
	} else {
		value = p.dataBuffer
		p.dataBuffer = p.readVRAM(addr)
	}
	p.v = (p.v + p.addrIncrement()) & 0x3fff
	return value
}

func (p *PPU) writeData(value uint8) {
	addr := p.v & 0x3fff
	if addr >= 0x3f00 {
		p.writePalette(addr, value)
	} else {
		p.writeVRAM(addr, value)
	}
	p.v = (p.v + p.addrIncrement()) & 0x3fff
}

// readVRAM/writeVRAM dispatch an address already masked to 14 bits to
// pattern tables (CHR) or nametable VRAM.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3fff
	if addr < 0x2000 {
		return p.chr.ReadCHR(addr)
	}
	return p.nametables[p.nametableIndex(addr)]
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3fff
	if addr < 0x2000 {
		p.chr.WriteCHR(addr, value)
		return
	}
	p.nametables[p.nametableIndex(addr)] = value
}

// nametableIndex folds the 0x2000-0x3EFF logical range onto the 2KiB
// physical nametable store per the mirroring mode (spec.md §3/§4.2).
func (p *PPU) nametableIndex(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000
	table := offset / 0x400
	within := offset % 0x400

	var physical uint16
	switch p.mirror {
	case cartridge.MirrorHorizontal:
		// logical table 1 -> 0, 3 -> 2
		physical = table / 2
	case cartridge.MirrorVertical:
		// logical table 2 -> 0, 3 -> 1
		physical = table % 2
	default: // FourScreen: no aliasing within the 2KiB window modeled here;
		// fold pairwise as a last resort so indices stay in range.
		physical = table % 2
	}
	return physical*0x400 + within
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.paletteRAM[paletteIndex(addr)]
}

func (p *PPU) writePalette(addr uint16, value uint8) {
	p.paletteRAM[paletteIndex(addr)] = value
}

func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1f
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

// Scanline and Dot expose the cursor for tests and instrumentation.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

// Status returns the raw status register, for tests.
func (p *PPU) Status() uint8 { return p.status }
