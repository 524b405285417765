// Package dongle implements the proprietary framed-stream transport (C6) on
// TCP/8000 that tunnels Modbus-style register operations through a Wi-Fi
// datalogger, addressed by a dongle serial and an inverter serial. Functional
// shape per spec.md §4.6; framing implemented here is not claimed to be
// byte-exact with any specific vendor firmware revision. Generalized from
// the teacher's miners/avalon.go generic dial/send/receive helper pattern.
package dongle

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	preambleByte0 = 0xA5
	preambleByte1 = 0x5A
	protocolVersion = 1

	funcReadInput   = 1
	funcReadHolding = 2
	funcWriteSingle = 3
	funcWriteMulti  = 4

	serialFieldLength = 10
)

// frame is the decoded form of one dongle protocol exchange.
type frame struct {
	Function      byte
	DongleSerial  string
	InverterSerial string
	Address       uint16
	Count         uint16
	Payload       []byte
}

// encode serializes f into the wire frame: preamble, version, function,
// dongle serial, inverter serial, address, count, payload length, payload,
// then a 16-bit checksum (sum of all preceding bytes, big-endian).
func encodeFrame(f frame) []byte {
	buf := make([]byte, 0, 2+1+1+serialFieldLength*2+2+2+2+len(f.Payload)+2)
	buf = append(buf, preambleByte0, preambleByte1, protocolVersion, f.Function)
	buf = append(buf, padSerial(f.DongleSerial)...)
	buf = append(buf, padSerial(f.InverterSerial)...)

	addr := make([]byte, 2)
	binary.BigEndian.PutUint16(addr, f.Address)
	buf = append(buf, addr...)

	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, f.Count)
	buf = append(buf, count...)

	plen := make([]byte, 2)
	binary.BigEndian.PutUint16(plen, uint16(len(f.Payload)))
	buf = append(buf, plen...)
	buf = append(buf, f.Payload...)

	sum := checksum(buf)
	cs := make([]byte, 2)
	binary.BigEndian.PutUint16(cs, sum)
	buf = append(buf, cs...)

	return buf
}

// decodeFrame reads one frame from r, validating the preamble and checksum.
func decodeFrame(r io.Reader) (frame, error) {
	header := make([]byte, 2+1+1+serialFieldLength*2+2+2+2)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("dongle: short header read: %w", err)
	}
	if header[0] != preambleByte0 || header[1] != preambleByte1 {
		return frame{}, fmt.Errorf("dongle: bad preamble 0x%02x%02x", header[0], header[1])
	}

	f := frame{
		Function:       header[3],
		DongleSerial:   trimSerial(header[4 : 4+serialFieldLength]),
		InverterSerial: trimSerial(header[4+serialFieldLength : 4+2*serialFieldLength]),
	}
	off := 4 + 2*serialFieldLength
	f.Address = binary.BigEndian.Uint16(header[off : off+2])
	f.Count = binary.BigEndian.Uint16(header[off+2 : off+4])
	plen := binary.BigEndian.Uint16(header[off+4 : off+6])

	payload := make([]byte, plen)
	if plen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return frame{}, fmt.Errorf("dongle: short payload read: %w", err)
		}
	}
	f.Payload = payload

	trailer := make([]byte, 2)
	if _, err := io.ReadFull(r, trailer); err != nil {
		return frame{}, fmt.Errorf("dongle: short checksum read: %w", err)
	}
	wantSum := binary.BigEndian.Uint16(trailer)
	gotSum := checksum(header) + checksumBytes(payload)
	if wantSum != gotSum {
		return frame{}, fmt.Errorf("dongle: checksum mismatch: frame desync")
	}

	return f, nil
}

func padSerial(s string) []byte {
	buf := make([]byte, serialFieldLength)
	copy(buf, s)
	return buf
}

func trimSerial(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

func checksum(b []byte) uint16 {
	var sum uint32
	for _, v := range b {
		sum += uint32(v)
	}
	return uint16(sum & 0xFFFF)
}

func checksumBytes(b []byte) uint16 {
	return checksum(b)
}
