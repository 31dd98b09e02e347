//go:build !linux

package utils

import (
	"context"
	"errors"

	"go.einride.tech/can"
)

var errNoSocketCAN = errors.New("socketcan is only available on linux")

type SocketCANWriter struct{}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	return nil, errNoSocketCAN
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return errNoSocketCAN
}

func (w *SocketCANWriter) Close() error { return nil }

type SocketCANReader struct{}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	return nil, errNoSocketCAN
}

func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	return can.Frame{}, errNoSocketCAN
}

func (r *SocketCANReader) Close() error { return nil }
