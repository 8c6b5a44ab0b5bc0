/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package parser

import (
	"devt.de/krotik/common/datautil"

	"github.com/malis-lang/malis/lexer"
)

/*
laBuffer is a ring-buffer-backed look-ahead over a token channel, grounded
on the teacher's parser/helper.go LABuffer: the parser's grammar decisions
only look at the next token, so a small fixed-size ring buffer is enough
look-ahead without materializing the whole token stream.
*/
type laBuffer struct {
	tokens chan lexer.Token
	buffer *datautil.RingBuffer
}

/*
newLABuffer creates a look-ahead buffer of the given size over a token
channel, pre-filling it so peek(0) works immediately.
*/
func newLABuffer(tokens chan lexer.Token, size int) *laBuffer {
	if size < 2 {
		size = 2
	}

	b := &laBuffer{tokens: tokens, buffer: datautil.NewRingBuffer(size)}

	for b.buffer.Size() < size {
		t, more := <-tokens
		b.buffer.Add(t)
		if !more || t.Type == lexer.TokenEOF {
			break
		}
	}

	return b
}

/*
next consumes and returns the next token, refilling the buffer from the
channel.
*/
func (b *laBuffer) next() lexer.Token {
	v := b.buffer.Poll()

	if t, more := <-b.tokens; more {
		b.buffer.Add(t)
	}

	if v == nil {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return v.(lexer.Token)
}

/*
peek looks n tokens ahead, with 0 meaning the next token to be consumed.
*/
func (b *laBuffer) peek(n int) lexer.Token {
	if n >= b.buffer.Size() {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return b.buffer.Get(n).(lexer.Token)
}
