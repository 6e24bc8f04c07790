package httpwire

import (
	"fmt"
	"io"
)

// WriteRequestLine emits "METHOD PATH HTTP/1.V\r\n". An empty method fails
// with ProtocolError; a missing path defaults to "/" (§4.3).
func WriteRequestLine(w io.Writer, method, path string, minorVersion int) error {
	if method == "" {
		return protocolErr("write_request_line", "unknown method")
	}
	if !validMethods[method] {
		return protocolErr("write_request_line", "unknown method: "+method)
	}
	if path == "" {
		path = "/"
	}
	_, err := fmt.Fprintf(w, "%s %s HTTP/1.%d\r\n", method, path, minorVersion)
	if err != nil {
		return ioErr("write_request_line", "write failed", err)
	}
	return nil
}

// WriteStatusLine emits "HTTP/1.V CODE REASON\r\n". A missing reason is
// emitted empty (§4.3).
func WriteStatusLine(w io.Writer, statusCode int, reason string, minorVersion int) error {
	_, err := fmt.Fprintf(w, "HTTP/1.%d %d %s\r\n", minorVersion, statusCode, reason)
	if err != nil {
		return ioErr("write_status_line", "write failed", err)
	}
	return nil
}

// WriteHeader emits each field as "Name: Value\r\n" in order, without the
// terminating blank line (the caller writes that once after the full head).
func WriteHeader(w io.Writer, h *Header) error {
	var err error
	h.VisitAll(func(name, value string) {
		if err != nil {
			return
		}
		_, werr := fmt.Fprintf(w, "%s: %s\r\n", name, value)
		if werr != nil {
			err = ioErr("write_header", "write failed", werr)
		}
	})
	return err
}

func writeHeadTerminator(w io.Writer) error {
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return ioErr("write_head_terminator", "write failed", err)
	}
	return nil
}

// WriteIdentityBody emits a head in identity mode (§4.3): all original
// headers minus Content-Length/Transfer-Encoding, plus Content-Length: L
// when L > 0 (omitted when L == 0), then the head terminator and the body
// bytes. headLine writes the request or status line.
func WriteIdentityBody(w io.Writer, header *Header, body []byte, headLine func(io.Writer) error) error {
	if err := headLine(w); err != nil {
		return err
	}
	out := header.WithoutFraming()
	if len(body) > 0 {
		if err := out.Add(headerContentLength, fmt.Sprintf("%d", len(body))); err != nil {
			return err
		}
	}
	if err := WriteHeader(w, out); err != nil {
		return err
	}
	if err := writeHeadTerminator(w); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return ioErr("write_identity_body", "write failed", err)
		}
	}
	return nil
}

// WriteChunkedHead emits a head in chunked mode (§4.3): all original headers
// minus Content-Length/Transfer-Encoding, plus Transfer-Encoding: chunked,
// then the head terminator. The caller writes the body afterward with
// WriteChunkedBody once it is available.
func WriteChunkedHead(w io.Writer, header *Header, headLine func(io.Writer) error) error {
	if err := headLine(w); err != nil {
		return err
	}
	out := header.WithoutFraming()
	if err := out.Add(headerTransferEncoding, chunkedEncoding); err != nil {
		return err
	}
	if err := WriteHeader(w, out); err != nil {
		return err
	}
	return writeHeadTerminator(w)
}

// WriteChunkedBody emits body as a single chunk (omitted if empty) followed
// by the terminating zero-chunk, per §4.3 and §4.6 step 3.
func WriteChunkedBody(w io.Writer, body []byte) error {
	if len(body) > 0 {
		if err := writeChunk(w, body); err != nil {
			return err
		}
	}
	return writeChunk(w, nil)
}

func requestHeadLine(method, path string, minorVersion int) func(io.Writer) error {
	return func(w io.Writer) error {
		return WriteRequestLine(w, method, path, minorVersion)
	}
}

func responseHeadLine(statusCode int, reason string, minorVersion int) func(io.Writer) error {
	return func(w io.Writer) error {
		return WriteStatusLine(w, statusCode, reason, minorVersion)
	}
}

// HeadLineFor returns the request-line or status-line writer matching
// msg's role, so a forwarder re-emitting a parsed head does not need to
// know which variant it holds.
func HeadLineFor(msg *Message) func(io.Writer) error {
	if msg.IsRequest() {
		return requestHeadLine(msg.method, msg.path, msg.minorVersion)
	}
	return responseHeadLine(msg.statusCode, msg.reason, msg.minorVersion)
}
