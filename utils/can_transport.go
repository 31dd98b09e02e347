//go:build linux

package utils

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
	}
	return &SocketCANWriter{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

// SocketCANReader owns one receive goroutine feeding ReadFrame
type SocketCANReader struct {
	conn   net.Conn
	recv   *socketcan.Receiver
	frames chan can.Frame
	errc   chan error
	done   chan struct{}
	start  sync.Once
	closed sync.Once
}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
	}
	return &SocketCANReader{
		conn:   conn,
		recv:   socketcan.NewReceiver(conn),
		frames: make(chan can.Frame, 64),
		errc:   make(chan error, 1),
		done:   make(chan struct{}),
	}, nil
}

func (r *SocketCANReader) pump() {
	for r.recv.Receive() {
		if r.recv.HasErrorFrame() {
			continue
		}
		select {
		case r.frames <- r.recv.Frame():
		case <-r.done:
			return
		}
	}
	err := r.recv.Err()
	if err == nil {
		err = io.EOF
	}
	r.errc <- err
}

// ReadFrame blocks until a data frame arrives, the socket fails or ctx ends
func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case f := <-r.frames:
		return f, nil
	case err := <-r.errc:
		// keep reporting the failure to later callers
		r.errc <- err
		return can.Frame{}, fmt.Errorf("socketcan receive: %w", err)
	}
}

func (r *SocketCANReader) Close() error {
	var err error
	r.closed.Do(func() {
		close(r.done)
		if r.conn != nil {
			err = r.conn.Close()
		}
	})
	return err
}
