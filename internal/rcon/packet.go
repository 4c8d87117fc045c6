// Package rcon implements a client for the Source RCON protocol as spoken
// by Minecraft servers: binary framing over TCP, the password handshake,
// and sequential command execution over a single connection.
package rcon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Packet type identifiers. The protocol reuses the value 2 for both the
// server's auth response and the client's command request.
const (
	typeResponseValue = 0
	typeAuthResponse  = 2
	typeExecCommand   = 2
	typeAuth          = 3
)

// wrapperSize is the number of non-body bytes counted by the size field:
// request id (4) + type (4) + body terminator (1) + packet terminator (1).
const wrapperSize = 10

// maxPacketSize is the largest size field value the protocol allows.
const maxPacketSize = 4096

// packet is one RCON frame. The size prefix is computed on encode and
// consumed on decode; it is never stored.
type packet struct {
	ID   int32
	Type int32
	Body []byte
}

// encode renders the packet in wire form: little-endian int32 size, id and
// type, then the body followed by two null bytes.
func (p packet) encode() ([]byte, error) {
	size := int32(len(p.Body) + wrapperSize)
	if size > maxPacketSize {
		return nil, fmt.Errorf("%w: packet of %d bytes exceeds protocol maximum", ErrProtocol, size)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size+4))
	_ = binary.Write(buf, binary.LittleEndian, size)
	_ = binary.Write(buf, binary.LittleEndian, p.ID)
	_ = binary.Write(buf, binary.LittleEndian, p.Type)
	buf.Write(p.Body)
	buf.Write([]byte{0, 0})

	return buf.Bytes(), nil
}

// writeTo writes the encoded packet to w.
func (p packet) writeTo(w io.Writer) error {
	bs, err := p.encode()
	if err != nil {
		return err
	}

	_, err = w.Write(bs)
	return err
}

// readFrom decodes a single frame from r into the receiving packet.
// Undersized, oversized, or badly terminated frames are protocol errors.
func (p *packet) readFrom(r io.Reader) error {
	var size int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return err
	}

	if size < wrapperSize {
		return fmt.Errorf("%w: packet size %d below protocol minimum", ErrProtocol, size)
	}
	if size > maxPacketSize {
		return fmt.Errorf("%w: packet size %d exceeds protocol maximum", ErrProtocol, size)
	}

	if err := binary.Read(r, binary.LittleEndian, &p.ID); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Type); err != nil {
		return err
	}

	p.Body = make([]byte, size-wrapperSize)
	if _, err := io.ReadFull(r, p.Body); err != nil {
		return err
	}

	var term [2]byte
	if _, err := io.ReadFull(r, term[:]); err != nil {
		return err
	}
	if term[0] != 0 || term[1] != 0 {
		return fmt.Errorf("%w: packet not null-terminated", ErrProtocol)
	}

	return nil
}
