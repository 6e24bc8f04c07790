package httpwire

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseHead reads from br until the CRLFCRLF head terminator, then
// parses the accumulated bytes as a response head if the first line
// starts with "HTTP/", otherwise as a request head (§4.1's ambiguity
// rule). It fails with a ProtocolError if the terminator is never found,
// if EOF arrives first, or if the first line parses as neither.
//
// br must be the single buffered reader driving one leg of the exchange
// (client→upstream or upstream→client): any bytes read past the
// terminator by bufio's internal buffering remain available to the body
// reader that runs next on the same *bufio.Reader, so nothing is
// over-read past what §4.1 requires to be delivered intact.
func ParseHead(br *bufio.Reader) (*Message, error) {
	lines, err := readHeadLines(br)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, protocolErr("parse_head", "empty head")
	}

	first := lines[0]
	if strings.HasPrefix(first, "HTTP/") {
		return parseResponseHead(first, lines[1:])
	}
	return parseRequestHead(first, lines[1:])
}

// readHeadLines reads CRLF-terminated lines until an empty line (bare
// CRLF) is seen, returning every line before it with the trailing CRLF
// stripped.
func readHeadLines(br *bufio.Reader) ([]string, error) {
	var lines []string
	total := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, protocolErr("parse_head", "EOF before CRLFCRLF terminator")
			}
			return nil, ioErr("parse_head", "read failed", err)
		}

		total += len(line)
		if total > maxHeadSize {
			return nil, protocolErr("parse_head", "head exceeds maximum size")
		}
		if len(line) > maxHeaderLineLength {
			return nil, protocolErr("parse_head", "header line too long")
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			return lines, nil
		}
		lines = append(lines, trimmed)
	}
}

func parseRequestHead(requestLine string, headerLines []string) (*Message, error) {
	parts := strings.SplitN(requestLine, " ", 3)
	if len(parts) < 2 {
		return nil, protocolErr("parse_request_line", "malformed request line: "+requestLine)
	}
	method := parts[0]
	path := parts[1]
	minor := 0
	if len(parts) == 3 {
		v, err := parseHTTPVersion(parts[2])
		if err != nil {
			return nil, err
		}
		minor = v
	}

	header, err := parseHeaderLines(headerLines)
	if err != nil {
		return nil, err
	}

	return &Message{
		role:         RoleRequest,
		method:       method,
		path:         path,
		minorVersion: minor,
		header:       header,
	}, nil
}

func parseResponseHead(statusLine string, headerLines []string) (*Message, error) {
	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 {
		return nil, protocolErr("parse_status_line", "malformed status line: "+statusLine)
	}
	minor, err := parseHTTPVersion(parts[0])
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, protocolErr("parse_status_line", "malformed status code: "+parts[1])
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}

	header, err := parseHeaderLines(headerLines)
	if err != nil {
		return nil, err
	}

	return &Message{
		role:         RoleResponse,
		statusCode:   code,
		reason:       reason,
		minorVersion: minor,
		header:       header,
	}, nil
}

func parseHTTPVersion(tok string) (int, error) {
	switch tok {
	case "HTTP/1.1":
		return 1, nil
	case "HTTP/1.0":
		return 0, nil
	default:
		return 0, protocolErr("parse_version", "unsupported protocol version: "+tok)
	}
}

func parseHeaderLines(lines []string) (*Header, error) {
	h := NewHeader(len(lines))
	for _, line := range lines {
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, protocolErr("parse_header", "malformed header line: "+line)
		}
		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if name == "" {
			return nil, protocolErr("parse_header", "empty header name")
		}
		if err := h.Add(name, value); err != nil {
			return nil, err
		}
	}
	return h, nil
}
