package dongle

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	f := frame{
		Function:       funcReadInput,
		DongleSerial:   "DONGLE0001",
		InverterSerial: "INV0000001",
		Address:        80,
		Count:          33,
		Payload:        []byte{0x01, 0x02, 0x03, 0x04},
	}
	encoded := encodeFrame(f)

	decoded, err := decodeFrame(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded.Function != f.Function {
		t.Errorf("Function: got %d, want %d", decoded.Function, f.Function)
	}
	if decoded.DongleSerial != f.DongleSerial {
		t.Errorf("DongleSerial: got %q, want %q", decoded.DongleSerial, f.DongleSerial)
	}
	if decoded.InverterSerial != f.InverterSerial {
		t.Errorf("InverterSerial: got %q, want %q", decoded.InverterSerial, f.InverterSerial)
	}
	if decoded.Address != f.Address || decoded.Count != f.Count {
		t.Errorf("Address/Count: got %d/%d, want %d/%d", decoded.Address, decoded.Count, f.Address, f.Count)
	}
	if !bytes.Equal(decoded.Payload, f.Payload) {
		t.Errorf("Payload: got %v, want %v", decoded.Payload, f.Payload)
	}
}

func TestEncodeDecodeFrameEmptyPayload(t *testing.T) {
	f := frame{Function: funcWriteSingle, DongleSerial: "D", InverterSerial: "I", Address: 21, Count: 1}
	encoded := encodeFrame(f)
	decoded, err := decodeFrame(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Payload) != 0 {
		t.Errorf("expected empty payload, got %v", decoded.Payload)
	}
}

func TestDecodeFrameBadPreamble(t *testing.T) {
	f := frame{Function: funcReadInput, DongleSerial: "D", InverterSerial: "I"}
	encoded := encodeFrame(f)
	encoded[0] = 0x00
	if _, err := decodeFrame(bytes.NewReader(encoded)); err == nil {
		t.Fatal("expected error for corrupted preamble")
	}
}

func TestDecodeFrameChecksumMismatch(t *testing.T) {
	f := frame{Function: funcReadInput, DongleSerial: "D", InverterSerial: "I", Payload: []byte{1, 2, 3}}
	encoded := encodeFrame(f)
	encoded[len(encoded)-1] ^= 0xFF // corrupt the checksum's low byte
	if _, err := decodeFrame(bytes.NewReader(encoded)); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestPadAndTrimSerial(t *testing.T) {
	padded := padSerial("ABC")
	if len(padded) != serialFieldLength {
		t.Fatalf("got length %d, want %d", len(padded), serialFieldLength)
	}
	if trimSerial(padded) != "ABC" {
		t.Errorf("got %q, want %q", trimSerial(padded), "ABC")
	}
}

func TestPadSerialTruncatesOverlongSerial(t *testing.T) {
	padded := padSerial("THIS_IS_WAY_TOO_LONG")
	if len(padded) != serialFieldLength {
		t.Fatalf("got length %d, want %d", len(padded), serialFieldLength)
	}
}
