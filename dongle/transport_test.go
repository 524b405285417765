package dongle

import (
	"context"
	"encoding/binary"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/regmap"
)

// asciiWord encodes a two-ASCII-char register word the way DecodeASCIIString
// expects: low byte first char, high byte second char.
func asciiWord(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

func bigEndianWords(words ...uint16) []byte {
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[i*2:], w)
	}
	return buf
}

// startFakeDongle runs a single-connection fake dongle server answering the
// identity probe (device type 19, serial 115..119, firmware 7..10) with a
// fixed LXP_EU identity, acking any write, and answering any other holding
// read with each word set to its own register address, so ReadParameters has
// something deterministic to check.
func startFakeDongle(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	serialPayload := bigEndianWords(
		asciiWord('C', 'E'), asciiWord('1', '2'), asciiWord('3', '4'), asciiWord('5', '6'), asciiWord('7', '8'),
	)
	firmwarePayload := bigEndianWords(
		asciiWord('F', 'W'), asciiWord('1', '.'), asciiWord('0', 0), asciiWord(0, 0),
	)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			req, err := decodeFrame(conn)
			if err != nil {
				return
			}

			var payload []byte
			switch {
			case req.Function == funcReadHolding && req.Address == regmap.HoldDeviceTypeAddress:
				payload = bigEndianWords(device.DeviceTypeCodeLXPEU)
			case req.Function == funcReadHolding && req.Address == regmap.HoldSerialAddress:
				payload = serialPayload
			case req.Function == funcReadHolding && req.Address == regmap.HoldFirmwareAddress:
				payload = firmwarePayload
			case req.Function == funcReadHolding:
				words := make([]uint16, req.Count)
				for i := range words {
					words[i] = req.Address + uint16(i)
				}
				payload = bigEndianWords(words...)
			default:
				payload = nil
			}

			resp := frame{
				Function:       req.Function,
				DongleSerial:   req.DongleSerial,
				InverterSerial: req.InverterSerial,
				Address:        req.Address,
				Count:          req.Count,
				Payload:        payload,
			}
			if _, err := conn.Write(encodeFrame(resp)); err != nil {
				return
			}
		}
	}()

	return ln.Addr().String()
}

func TestConnectProbesIdentity(t *testing.T) {
	addr := startFakeDongle(t)
	host, port, _ := net.SplitHostPort(addr)

	tr := New(Config{Host: host, Port: mustAtoi(t, port), DongleSerial: "DONGLE0001", InverterSerial: "INV0000001", Timeout: 2 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := tr.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer tr.Disconnect(context.Background())

	identity := tr.Identity()
	if identity.Family != device.FamilyLXPEU {
		t.Errorf("Family: got %s, want LXP_EU", identity.Family)
	}
	if identity.Serial != "CE12345678" {
		t.Errorf("Serial: got %q, want %q", identity.Serial, "CE12345678")
	}
	if identity.FirmwareVersion != "FW1.0" {
		t.Errorf("FirmwareVersion: got %q, want %q", identity.FirmwareVersion, "FW1.0")
	}

	if got, _ := tr.ReadSerial(ctx); got != "CE12345678" {
		t.Errorf("ReadSerial: got %q", got)
	}
	if got, _ := tr.ReadDeviceType(ctx); got != device.DeviceTypeCodeLXPEU {
		t.Errorf("ReadDeviceType: got %d", got)
	}
}

func TestReadParametersAgainstFakeDongle(t *testing.T) {
	addr := startFakeDongle(t)
	host, port, _ := net.SplitHostPort(addr)

	tr := New(Config{Host: host, Port: mustAtoi(t, port), DongleSerial: "D", InverterSerial: "I", Timeout: 2 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer tr.Disconnect(context.Background())

	params, err := tr.ReadParameters(ctx, 200, 3)
	if err != nil {
		t.Fatalf("ReadParameters: %v", err)
	}
	if params["200"] != 200 || params["201"] != 201 || params["202"] != 202 {
		t.Errorf("got %+v", params)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	tr := New(Config{Host: "127.0.0.1", Port: 1})
	if err := tr.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect on a never-connected transport should be a no-op, got %v", err)
	}
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("bad port string %q: %v", s, err)
	}
	return n
}
