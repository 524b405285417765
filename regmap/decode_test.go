package regmap

import "testing"

func TestDecodeField16UnsignedScaled(t *testing.T) {
	regs := RawRegisters{10: 2345}
	def := RegisterDefinition{Address: 10, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth}
	v, ok := DecodeField(regs, def)
	if !ok {
		t.Fatal("expected ok")
	}
	if v != 234.5 {
		t.Errorf("got %v, want 234.5", v)
	}
}

func TestDecodeField16SignedNegative(t *testing.T) {
	// 65535 as a signed word is -1.
	regs := RawRegisters{10: 65535}
	def := RegisterDefinition{Address: 10, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity}
	v, ok := DecodeField(regs, def)
	if !ok {
		t.Fatal("expected ok")
	}
	if v != -1 {
		t.Errorf("got %v, want -1", v)
	}
}

func TestDecodeField16MissingWord(t *testing.T) {
	regs := RawRegisters{}
	def := RegisterDefinition{Address: 10, BitWidth: 16}
	if _, ok := DecodeField(regs, def); ok {
		t.Fatal("expected not-ok for missing register")
	}
}

func TestDecodeField32Unsigned(t *testing.T) {
	// lo=0x0001, hi=0x0002 -> 0x00020001 = 131073
	regs := RawRegisters{100: 0x0001, 101: 0x0002}
	def := RegisterDefinition{Address: 100, BitWidth: 32, Sign: Unsigned, Scale: ScaleIdentity}
	v, ok := DecodeField(regs, def)
	if !ok {
		t.Fatal("expected ok")
	}
	if v != 131073 {
		t.Errorf("got %v, want 131073", v)
	}
}

func TestDecodeField32SignedNegative(t *testing.T) {
	regs := RawRegisters{100: 0xFFFF, 101: 0xFFFF}
	def := RegisterDefinition{Address: 100, BitWidth: 32, Sign: Signed, Scale: ScaleIdentity}
	v, ok := DecodeField(regs, def)
	if !ok {
		t.Fatal("expected ok")
	}
	if v != -1 {
		t.Errorf("got %v, want -1", v)
	}
}

func TestDecodeField32MissingHighWord(t *testing.T) {
	regs := RawRegisters{100: 0x0001}
	def := RegisterDefinition{Address: 100, BitWidth: 32}
	if _, ok := DecodeField(regs, def); ok {
		t.Fatal("expected not-ok when high word is missing")
	}
}

func TestDecodeSOCSOH(t *testing.T) {
	// SOC=85 (0x55), SOH=90 (0x5A) -> 0x5A55
	regs := RawRegisters{50: 0x5A55}
	v, ok := DecodeSOCSOH(regs, 50)
	if !ok {
		t.Fatal("expected ok")
	}
	if v.SOC != 0x55 || v.SOH != 0x5A {
		t.Errorf("got %+v", v)
	}
}

func TestDecodeSOCSOHMissing(t *testing.T) {
	if _, ok := DecodeSOCSOH(RawRegisters{}, 50); ok {
		t.Fatal("expected not-ok for missing register")
	}
}

func TestDecodeParallelConfig(t *testing.T) {
	// master=1, phase=2 (T), nodeCount=5
	// bit0=1, bits1-2=10 (2), bits3-7=00101 (5)
	raw := uint16(1) | uint16(2)<<1 | uint16(5)<<3
	regs := RawRegisters{60: raw}
	v, ok := DecodeParallelConfig(regs, 60)
	if !ok {
		t.Fatal("expected ok")
	}
	if !v.IsMaster || v.Phase != 2 || v.NodeCount != 5 {
		t.Errorf("got %+v", v)
	}
}

func TestDecodeASCIIString(t *testing.T) {
	// "AB" then "C\0" -> words little-endian: low byte first, high byte second.
	regs := RawRegisters{
		0: uint16('A') | uint16('B')<<8,
		1: uint16('C') | uint16(0)<<8,
	}
	s, ok := DecodeASCIIString(regs, 0, 2)
	if !ok {
		t.Fatal("expected ok")
	}
	if s != "ABC" {
		t.Errorf("got %q, want %q", s, "ABC")
	}
}

func TestDecodeASCIIStringMissingWord(t *testing.T) {
	regs := RawRegisters{0: uint16('A') | uint16('B')<<8}
	if _, ok := DecodeASCIIString(regs, 0, 2); ok {
		t.Fatal("expected not-ok when a word is missing")
	}
}
