package proxy

import (
	"io"
	"net"
	"sync"
)

// tunnelBufferSize is the fixed per-direction copy buffer for the raw byte
// pump after a successful upgrade (§4.7). There is no framing left to
// interpret once the tunnel starts, so a small fixed buffer is enough.
const tunnelBufferSize = 1024

// Tunnel pumps bytes in both directions between client and upstream until
// either side closes or errors, per §4.7. As soon as one direction stops,
// both connections are closed, which stops the other direction too; Tunnel
// returns once both directions have stopped.
func Tunnel(client, upstream net.Conn) {
	var wg sync.WaitGroup
	wg.Add(2)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			client.Close()
			upstream.Close()
		})
	}

	go func() {
		defer wg.Done()
		pump(upstream, client)
		stop()
	}()
	go func() {
		defer wg.Done()
		pump(client, upstream)
		stop()
	}()

	wg.Wait()
}

// pump copies from src to dst until src hangs up or either side errors,
// then half-closes dst's write side if it supports it, so the peer
// reading from dst sees end-of-stream.
func pump(dst io.Writer, src io.Reader) {
	buf := make([]byte, tunnelBufferSize)
	io.CopyBuffer(dst, src, buf)

	if closer, ok := dst.(interface{ CloseWrite() error }); ok {
		closer.CloseWrite()
	}
}
