package http

import "bytes"

var (
	crlfDelimiter = []byte("\r\n\r\n")
	lfDelimiter   = []byte("\n\n")
)

// SplitHeaderBody splits a raw request buffer at the first blank line.
//
// The CRLF CRLF delimiter is preferred; a bare LF LF delimiter is accepted
// when no CRLF one exists. Without any delimiter the whole buffer is returned
// as the head and the body is empty, leaving it to the parser to reject
// the input if the request line is unusable. Both results alias data.
func SplitHeaderBody(data []byte) (head, rest []byte) {
	if i := bytes.Index(data, crlfDelimiter); i >= 0 {
		return data[:i], data[i+len(crlfDelimiter):]
	}
	if i := bytes.Index(data, lfDelimiter); i >= 0 {
		return data[:i], data[i+len(lfDelimiter):]
	}
	return data, data[len(data):]
}
