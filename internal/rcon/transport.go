package rcon

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// DefaultPort is the port Minecraft servers listen on for RCON by default.
const DefaultPort uint16 = 25575

const (
	// DefaultConnectTimeout bounds DNS resolution plus the TCP handshake.
	DefaultConnectTimeout = 6 * time.Second

	// DefaultCommandTimeout bounds a single command round trip.
	DefaultCommandTimeout = 10 * time.Second
)

// Transport owns one TCP connection to one RCON server and performs the
// byte-level conversation on it: framing, the auth handshake, and
// request/response correlation. It is not safe for concurrent use; every
// logical operation gets its own Transport.
type Transport struct {
	conn   net.Conn
	seq    int32
	cmdTTL time.Duration
	closed bool
}

// Dial opens a TCP connection to host:port within connectTimeout.
// cmdTimeout bounds each subsequent Authenticate and Send round trip.
func Dial(host string, port uint16, connectTimeout, cmdTimeout time.Duration) (*Transport, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if cmdTimeout <= 0 {
		cmdTimeout = DefaultCommandTimeout
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	return &Transport{conn: conn, cmdTTL: cmdTimeout}, nil
}

// Authenticate performs the password handshake. A response with request id
// -1 is the protocol's wrong-password signal and yields ErrAuth; any other
// id mismatch is ErrProtocol.
func (t *Transport) Authenticate(password string) error {
	id := t.nextID()
	resp, err := t.roundTrip(packet{ID: id, Type: typeAuth, Body: []byte(password)})
	if err != nil {
		return err
	}

	if resp.ID == -1 {
		return ErrAuth
	}
	if resp.ID != id {
		return fmt.Errorf("%w: auth response id %d, sent %d", ErrProtocol, resp.ID, id)
	}

	return nil
}

// Send executes one command and returns the response body with Minecraft
// color codes stripped and surrounding whitespace trimmed.
//
// The response is assumed to fit in a single frame. The protocol has no end
// marker for fragmented replies; none of the commands this system issues
// have been observed to overflow a frame, so the dummy-command boundary
// technique is deliberately not implemented.
func (t *Transport) Send(command string) (string, error) {
	id := t.nextID()
	resp, err := t.roundTrip(packet{ID: id, Type: typeExecCommand, Body: []byte(command)})
	if err != nil {
		return "", err
	}

	if resp.Type == typeAuthResponse && resp.ID == -1 {
		return "", ErrAuth
	}
	if resp.Type != typeResponseValue {
		return "", fmt.Errorf("%w: unexpected response type %d", ErrProtocol, resp.Type)
	}
	if resp.ID != id {
		return "", fmt.Errorf("%w: response id %d, sent %d", ErrProtocol, resp.ID, id)
	}

	return strings.TrimSpace(stripColorCodes(string(resp.Body))), nil
}

// Close shuts down the socket. Safe to call more than once and on every
// exit path.
func (t *Transport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	return t.conn.Close()
}

// roundTrip writes one frame and reads one frame under the command deadline.
func (t *Transport) roundTrip(req packet) (*packet, error) {
	deadline := time.Now().Add(t.cmdTTL)
	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommand, err)
	}

	if err := req.writeTo(t.conn); err != nil {
		return nil, wrapIO(err)
	}

	var resp packet
	if err := resp.readFrom(t.conn); err != nil {
		return nil, wrapIO(err)
	}

	return &resp, nil
}

// nextID hands out a fresh positive request id per frame.
func (t *Transport) nextID() int32 {
	t.seq++
	return t.seq
}

// wrapIO keeps protocol violations distinct and tags everything else as a
// command-level transport failure.
func wrapIO(err error) error {
	if errors.Is(err, ErrProtocol) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrCommand, err)
}

// stripColorCodes removes Minecraft formatting escapes: the section sign
// followed by one character.
func stripColorCodes(s string) string {
	if !strings.ContainsRune(s, '§') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == '§' {
			skip = true
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
