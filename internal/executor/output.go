package executor

import "bytes"

// lineCapture keeps at most limit bytes of a helper's output. Carriage
// returns before a newline are dropped, so "which rg: /usr/bin/rg\r\n"
// reads the same as its unix form.
type lineCapture struct {
	buf     bytes.Buffer
	limit   int
	dropped bool
	pendCR  bool
}

func newLineCapture(limit int) *lineCapture {
	return &lineCapture{limit: limit}
}

func (c *lineCapture) Write(p []byte) (int, error) {
	for _, b := range p {
		if c.pendCR {
			c.pendCR = false
			if b != '\n' {
				c.put('\r')
			}
		}
		if b == '\r' {
			c.pendCR = true
			continue
		}
		c.put(b)
	}
	return len(p), nil
}

func (c *lineCapture) put(b byte) {
	if c.buf.Len() >= c.limit {
		c.dropped = true
		return
	}
	c.buf.WriteByte(b)
}

// String returns the captured text. Once output was dropped it ends at the
// last complete line, so a parser never sees half a line.
func (c *lineCapture) String() string {
	out := c.buf.Bytes()
	if c.pendCR && !c.dropped {
		out = append(out, '\r')
	}
	if c.dropped {
		if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
			out = out[:i+1]
		}
	}
	return string(out)
}

func (c *lineCapture) Truncated() bool {
	return c.dropped
}
