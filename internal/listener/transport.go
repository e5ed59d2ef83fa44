package listener

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Transport yields successive newline-terminated records from one connection.
// ReadRecord returns io.EOF once the peer has closed the stream; any other
// error means the connection failed.
type Transport interface {
	ReadRecord() (string, error)
	Close() error
}

type lineTransport struct {
	rc io.ReadCloser
	r  *bufio.Reader
}

// NewLineTransport wraps a connection (usually the event socket) as a Transport.
func NewLineTransport(rc io.ReadCloser) Transport {
	return &lineTransport{
		rc: rc,
		r:  bufio.NewReader(rc),
	}
}

func (t *lineTransport) ReadRecord() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		// a final record without a newline is still delivered; the next call sees EOF
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (t *lineTransport) Close() error {
	return t.rc.Close()
}
