// Package imaging converts a user-selected photo into a self-contained
// data URI that can be stored inline in a student record and rendered
// directly by the dashboard, with no separate file store.
package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// Encode reads the attachment fully and returns a data URI of the form
//
//	data:<mime-type>;base64,<payload>
//
// The MIME prefix is sniffed from the bytes themselves, never taken from
// a client-supplied filename or header. A read failure aborts the encode;
// no partial URI is ever returned.
func Encode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("imaging: read attachment: %w", err)
	}

	mime := mimetype.Detect(data)

	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Pending is an in-flight encode started by EncodeAsync.
type Pending struct {
	ch chan result
}

type result struct {
	uri string
	err error
}

// EncodeAsync starts the encode in the background and returns immediately.
// This is the one suspension point in the record pipeline: add and edit
// wait on the Pending before committing their mutation.
func EncodeAsync(r io.Reader) *Pending {
	p := &Pending{ch: make(chan result, 1)}

	// The result channel is buffered so the goroutine can finish even
	// when nobody waits: a discarded Pending never leaks, and its late
	// result is simply dropped instead of being applied to stale state.
	go func() {
		uri, err := Encode(r)
		p.ch <- result{uri: uri, err: err}
	}()

	return p
}

// Wait blocks until the encode completes or ctx is done, whichever comes
// first. Cancelling the context abandons the result; it does not stop the
// underlying read.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-p.ch:
		return res.uri, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
