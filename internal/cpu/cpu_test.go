package cpu

import "testing"

// fakeBus is a flat 64KiB address space with a reset vector at 0xFFFC and
// an NMI vector at 0xFFFA, for isolated CPU testing.
type fakeBus struct {
	mem      [0x10000]uint8
	cycles   int
	nmi      bool
	romStart uint16 // writes at or above this address are rejected
}

func newFakeBus() *fakeBus {
	b := &fakeBus{romStart: 0x8000}
	b.mem[0xfffc] = 0x00
	b.mem[0xfffd] = 0x80
	b.mem[0xfffa] = 0x00
	b.mem[0xfffb] = 0x90
	return b
}

func (b *fakeBus) ReadByte(addr uint16) uint8 { return b.mem[addr] }
func (b *fakeBus) WriteByte(addr uint16, value uint8) error {
	if addr >= b.romStart {
		return &FatalError{Reason: "write to ROM", PC: addr}
	}
	b.mem[addr] = value
	return nil
}
func (b *fakeBus) Tick(cycles int) { b.cycles += cycles }
func (b *fakeBus) PollNMI() bool {
	pending := b.nmi
	b.nmi = false
	return pending
}

// load writes program bytes starting at 0x8000, where newFakeBus's reset
// vector points.
func (b *fakeBus) load(program ...uint8) {
	for i, v := range program {
		b.mem[0x8000+i] = v
	}
}

func newTestCPU(program ...uint8) (*CPU, *fakeBus) {
	b := newFakeBus()
	b.load(program...)
	c := New(b)
	return c, b
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x05, 0x00)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x05 || c.Z || c.N {
		t.Fatalf("A=0x%02X Z=%v N=%v", c.A, c.Z, c.N)
	}
}

func TestLDAImmediateZero(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x00)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Z || c.N {
		t.Fatalf("expected Z set, N clear; got Z=%v N=%v", c.Z, c.N)
	}
}

func TestTAXTransfersAccumulator(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0xc0, 0xaa, 0xe8, 0x00)
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.X != 0xc1 {
		t.Fatalf("expected X=0xC1, got 0x%02X", c.X)
	}
}

func TestINXWraparound(t *testing.T) {
	c, _ := newTestCPU(0xe8, 0xe8, 0x00)
	c.X = 0xff
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.X != 0x00 || !c.Z {
		t.Fatalf("expected X wrap to 0 with Z set; got X=0x%02X Z=%v", c.X, c.Z)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.X != 0x01 {
		t.Fatalf("expected X=1, got 0x%02X", c.X)
	}
}

func TestTXSDoesNotAffectFlags(t *testing.T) {
	c, _ := newTestCPU(0xa2, 0xff, 0x9a)
	c.Z = false
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.SP != 0xff {
		t.Fatalf("expected SP=0xFF, got 0x%02X", c.SP)
	}
	if !c.N || c.Z {
		t.Fatalf("expected TXS to keep N/Z from LDX #$FF; got N=%v Z=%v", c.N, c.Z)
	}
}

func TestBranchTakenSkipsBRK(t *testing.T) {
	c, b := newTestCPU(0x38, 0xb0, 0x01, 0x00, 0x0a, 0x00) // SEC; BCS +1; BRK; ASL A; BRK
	c.A = 0x01
	for !c.Halted() {
		if err := c.Step(); err != nil {
			break
		}
		if c.PC == 0x8005 {
			break
		}
	}
	if c.A != 0x02 {
		t.Fatalf("expected branch taken past BRK and ASL to double A to 0x02, got 0x%02X", c.A)
	}
	_ = b
}

func TestJSRAndRTSRoundtrip(t *testing.T) {
	c, _ := newTestCPU(0x20, 0x06, 0x80, 0x00, 0x00, 0x00, 0x38, 0x60)
	if err := c.Step(); err != nil { // JSR $8006
		t.Fatal(err)
	}
	if c.PC != 0x8006 {
		t.Fatalf("expected PC=0x8006 after JSR, got 0x%04X", c.PC)
	}
	if err := c.Step(); err != nil { // SEC at $8006
		t.Fatal(err)
	}
	if err := c.Step(); err != nil { // RTS
		t.Fatal(err)
	}
	if c.PC != 0x8003 {
		t.Fatalf("expected PC=0x8003 after RTS, got 0x%04X", c.PC)
	}
}

func TestUnknownOpcodeHalts(t *testing.T) {
	c, _ := newTestCPU(0x02) // JAM, deliberately absent from the table
	err := c.Step()
	if err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
	if !c.Halted() {
		t.Fatal("expected CPU to be halted")
	}
	var fe *FatalError
	if _, ok := err.(*FatalError); !ok {
		t.Fatalf("expected *FatalError, got %T", err)
	}
	_ = fe
}

func TestWriteToROMIsFatal(t *testing.T) {
	c, b := newTestCPU(0xa9, 0x42, 0x8d, 0x00, 0x80) // LDA #$42; STA $8000
	b.romStart = 0x8000
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	err := c.Step()
	if err == nil {
		t.Fatal("expected write to ROM to halt the CPU")
	}
	if !c.Halted() {
		t.Fatal("expected CPU halted after ROM write")
	}
}

func TestStatusByteBit5AlwaysSet(t *testing.T) {
	c, _ := newTestCPU(0x00)
	if c.StatusByte()&0x20 == 0 {
		t.Fatal("expected bit 5 (R) always set")
	}
}

func TestPHPSetsBreakBitOnStack(t *testing.T) {
	c, b := newTestCPU(0x08, 0x00) // PHP
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	pushed := b.mem[0x0100+uint16(c.SP)+1]
	if pushed&0x10 == 0 {
		t.Fatal("expected B bit set in PHP's pushed status byte")
	}
}

func TestIndirectJMPPageBoundaryBug(t *testing.T) {
	c, b := newTestCPU(0x6c, 0xff, 0x02) // JMP ($02FF)
	b.mem[0x02ff] = 0x00
	b.mem[0x0200] = 0x90 // the buggy wraparound fetch reads the high byte from 0x0200, not 0x0300
	b.mem[0x0300] = 0xa0
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x9000 {
		t.Fatalf("expected PC=0x9000 (page-wrap bug), got 0x%04X", c.PC)
	}
}

func TestIndirectIndexedWrapsAcrossFullAddress(t *testing.T) {
	c, b := newTestCPU(0xb1, 0x10) // LDA ($10),Y
	b.mem[0x0010] = 0xff
	b.mem[0x0011] = 0xff
	c.Y = 0x01
	b.mem[0x0000] = 0x77 // (0xFFFF + 1) wraps to 0x0000
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x77 {
		t.Fatalf("expected A=0x77, got 0x%02X", c.A)
	}
}

func TestZeroPageXWraps(t *testing.T) {
	c, b := newTestCPU(0xb5, 0x80) // LDA $80,X
	c.X = 0xff
	b.mem[0x007f] = 0x33
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x33 {
		t.Fatalf("expected A=0x33 from wrapped zero page, got 0x%02X", c.A)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x7f, 0x69, 0x01, 0x00) // LDA #$7F; ADC #$01
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.A != 0x80 {
		t.Fatalf("expected A=0x80, got 0x%02X", c.A)
	}
	if !c.V {
		t.Fatal("expected signed overflow 0x7F+0x01")
	}
	if c.C {
		t.Fatal("expected no carry out of 0x7F+0x01")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, _ := newTestCPU(0x38, 0xa9, 0x00, 0xe9, 0x01, 0x00) // SEC; LDA #$00; SBC #$01
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.A != 0xff {
		t.Fatalf("expected A=0xFF (0-1 with borrow), got 0x%02X", c.A)
	}
	if c.C {
		t.Fatal("expected carry clear (borrow occurred)")
	}
}

func TestNMIServicePushesStatusWithBreakClear(t *testing.T) {
	c, b := newTestCPU(0xea, 0x00)
	b.mem[0x9000] = 0xea // NOP as the handler's first instruction, run in the same Step
	b.nmi = true
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	pushed := b.mem[0x0100+uint16(c.SP)+1]
	if pushed&0x10 != 0 {
		t.Fatal("expected B bit clear in NMI-pushed status byte")
	}
	if c.PC != 0x9001 {
		t.Fatalf("expected PC loaded from NMI vector (0x9000) then past the handler's NOP, got 0x%04X", c.PC)
	}
}

func TestUnofficialLAX(t *testing.T) {
	c, b := newTestCPU(0xa7, 0x10) // LAX $10
	b.mem[0x0010] = 0x55
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x55 || c.X != 0x55 {
		t.Fatalf("expected A=X=0x55, got A=0x%02X X=0x%02X", c.A, c.X)
	}
}

func TestUnofficialAXS(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0xff, 0xa2, 0x0f, 0xcb, 0x01) // LDA #$FF; LDX #$0F; AXS #$01
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.X != 0x0e {
		t.Fatalf("expected X=0x0E, got 0x%02X", c.X)
	}
	if !c.C {
		t.Fatal("expected carry set since (A&X) >= M")
	}
}
