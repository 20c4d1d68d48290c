package input

import (
	"bufio"
	"io"
	"sync"
)

// Stream delivers raw terminal bytes via a channel and decodes them into keys.
type Stream struct {
	ch      chan byte
	done    chan struct{}
	once    sync.Once
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (EOF on session close) or after
// Close, once it next wakes up.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			select {
			case <-s.done:
				return
			default:
			}
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. A reader goroutine blocked on a full buffer
// exits immediately; one blocked in Read exits when the read returns.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Drain returns every key decoded from the bytes available right now without
// blocking. ok is false once the underlying reader has been closed or the
// stream was closed.
func (s *Stream) Drain() (keys []Key, ok bool) {
	select {
	case <-s.done:
		return nil, false
	default:
	}
	buf := s.pending
	s.pending = nil
drain:
	for !s.closed {
		select {
		case b, open := <-s.ch:
			if !open {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	keys, rest := Decode(buf)
	if len(rest) > 0 && !s.closed {
		// Incomplete escape sequence; finish it next frame.
		s.pending = append(s.pending, rest...)
	} else if len(rest) > 0 {
		keys = append(keys, KeyEscape)
	}
	return keys, !s.closed
}

// Decode turns raw terminal input into keys. Arrow keys arrive as CSI
// ("ESC [ A") or SS3 ("ESC O A") sequences. A trailing ESC or ESC [ that may
// still be completed by the next read is returned as rest.
func Decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			if i+1 >= len(buf) {
				return keys, buf[i:]
			}
			if next := buf[i+1]; next == '[' || next == 'O' {
				if i+2 >= len(buf) {
					return keys, buf[i:]
				}
				if k, ok := arrowKey(buf[i+2]); ok {
					keys = append(keys, k)
					i += 2
					continue
				}
				// Unknown sequence: skip to its final byte.
				j := i + 2
				for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
					j++
				}
				i = j
				continue
			}
			keys = append(keys, KeyEscape)
			continue
		}
		if k, ok := byteKey(b); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	}
	return "", false
}

func byteKey(b byte) (Key, bool) {
	switch {
	case b == '\r' || b == '\n':
		return KeyEnter, true
	case b == 0x03:
		return KeyCtrlC, true
	case b >= 0x20 && b < 0x7f:
		return Key(string(rune(b))), true
	}
	return "", false
}
