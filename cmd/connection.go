// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

// Transport extends the protocol transport with connection lifecycle.
type Transport interface {
	holmarc.Transport
	io.Closer
}

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// SerialTransport adapts a serial port to the per-byte Transport contract.
// The port's read timeout provides the bounded ReadByte.
type SerialTransport struct {
	port serial.Port
}

// OpenSerialTransport opens and configures a serial port: 8 data bits, no
// parity, one stop bit, no line termination, with the given per-read
// timeout. The input buffer is flushed so a fresh session never sees
// bytes left over from a previous one.
func OpenSerialTransport(portName string, baudRate int, timeout time.Duration) (Transport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %v", portName, err)
	}

	st := &SerialTransport{port: port}
	if err := st.FlushInput(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %v", portName, err)
	}

	return st, nil
}

func (s *SerialTransport) WriteByte(b byte) error {
	_, err := s.port.Write([]byte{b})
	return err
}

func (s *SerialTransport) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := s.port.Read(buf[:])
	if err != nil {
		return 0, err
	}
	// go.bug.st/serial signals an expired read timeout as a zero-byte read.
	if n == 0 {
		return 0, holmarc.ErrReadTimeout
	}
	return buf[0], nil
}

func (s *SerialTransport) FlushInput() error {
	return s.port.ResetInputBuffer()
}

func (s *SerialTransport) Close() error {
	return s.port.Close()
}

// WebSocketTransport adapts a WebSocket connection (a serial-over-WS
// bridge speaking binary messages) to the per-byte Transport contract.
// A pump goroutine splits incoming messages into bytes so ReadByte can
// apply the protocol's read timeout without poisoning the connection
// with read deadlines.
type WebSocketTransport struct {
	conn    *websocket.Conn
	timeout time.Duration
	bytes   chan byte
	done    chan struct{}
	lost    chan struct{}
	once    sync.Once
}

// OpenWebSocketTransport opens a WebSocket connection with HTTP Basic auth
func OpenWebSocketTransport(wsURL, username, password string, skipSSLVerify bool, timeout time.Duration) (Transport, error) {
	// Parse and validate URL
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	wt := &WebSocketTransport{
		conn:    conn,
		timeout: timeout,
		bytes:   make(chan byte, 256),
		done:    make(chan struct{}),
		lost:    make(chan struct{}),
	}
	go wt.readPump()

	return wt, nil
}

// readPump splits incoming binary messages into the byte channel until
// the connection fails or the transport is closed.
func (w *WebSocketTransport) readPump() {
	defer close(w.lost)
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			return
		}
		// Only binary messages carry bridge traffic
		if messageType != websocket.BinaryMessage {
			continue
		}
		for _, b := range data {
			select {
			case w.bytes <- b:
			case <-w.done:
				return
			}
		}
	}
}

func (w *WebSocketTransport) WriteByte(b byte) error {
	return w.conn.WriteMessage(websocket.BinaryMessage, []byte{b})
}

func (w *WebSocketTransport) ReadByte() (byte, error) {
	// Buffered bytes win over a lost connection: the bridge may have
	// delivered data just before going away.
	select {
	case b := <-w.bytes:
		return b, nil
	default:
	}

	select {
	case b := <-w.bytes:
		return b, nil
	case <-time.After(w.timeout):
		return 0, holmarc.ErrReadTimeout
	case <-w.lost:
		select {
		case b := <-w.bytes:
			return b, nil
		default:
			return 0, ErrConnectionClosed
		}
	}
}

func (w *WebSocketTransport) FlushInput() error {
	for {
		select {
		case <-w.bytes:
		default:
			return nil
		}
	}
}

func (w *WebSocketTransport) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.conn.Close()
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("MAGNETOSTAT_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// OpenTransport opens either a serial or WebSocket transport based on flags
func OpenTransport() (Transport, string, error) {
	timeout := time.Duration(timeoutMs) * time.Millisecond

	if wsURL != "" {
		// WebSocket mode
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		t, err := OpenWebSocketTransport(wsURL, wsUsername, password, wsNoSSLVerify, timeout)
		if err != nil {
			return nil, "", err
		}

		return t, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		// Serial mode
		t, err := OpenSerialTransport(portName, baudRate, timeout)
		if err != nil {
			return nil, "", err
		}

		return t, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
