package encoding

// Encoder writes TLV elements into a fixed buffer.
//
// A measuring Encoder only counts bytes. Nested elements are produced by
// running the body once in measuring mode to learn the length, then again
// for real, so nothing is ever shifted or copied twice.
type Encoder struct {
	buf     Buffer
	pos     int
	measure bool
}

func NewEncoder(buf Buffer) *Encoder {
	return &Encoder{buf: buf}
}

// Measure returns the number of bytes fn would write.
func Measure(fn func(e *Encoder)) int {
	m := Encoder{measure: true}
	fn(&m)
	return m.pos
}

// EncodeInto measures fn, then writes it into out.
// It returns ErrBufferTooSmall without writing when out is too short.
func EncodeInto(out Buffer, fn func(e *Encoder)) (int, error) {
	n := Measure(fn)
	if n > len(out) {
		return 0, ErrBufferTooSmall
	}
	e := Encoder{buf: out}
	fn(&e)
	return e.pos, nil
}

// Pos is the number of bytes written so far.
func (e *Encoder) Pos() int {
	return e.pos
}

func (e *Encoder) PutTLNum(v TLNum) {
	if !e.measure {
		v.EncodeInto(e.buf[e.pos:])
	}
	e.pos += v.EncodingLength()
}

func (e *Encoder) PutTL(typ TLNum, l int) {
	e.PutTLNum(typ)
	e.PutTLNum(TLNum(l))
}

func (e *Encoder) PutBytes(b []byte) {
	if !e.measure {
		copy(e.buf[e.pos:], b)
	}
	e.pos += len(b)
}

func (e *Encoder) PutTLV(typ TLNum, val []byte) {
	e.PutTL(typ, len(val))
	e.PutBytes(val)
}

// PutNat writes a NonNegativeInteger element.
func (e *Encoder) PutNat(typ TLNum, v Nat) {
	e.PutTL(typ, v.EncodingLength())
	if !e.measure {
		v.EncodeInto(e.buf[e.pos:])
	}
	e.pos += v.EncodingLength()
}

// Nested writes an element whose value is produced by fn.
func (e *Encoder) Nested(typ TLNum, fn func(e *Encoder)) {
	l := Measure(fn)
	e.PutTL(typ, l)
	if e.measure {
		e.pos += l
		return
	}
	fn(e)
}

func (e *Encoder) PutComponent(c Component) {
	e.PutTLV(c.Typ, c.Val)
}

// PutName writes a Name element of the given type (usually TypeName).
func (e *Encoder) PutName(typ TLNum, n Name) {
	e.PutTL(typ, n.EncodingLength())
	if !e.measure {
		n.EncodeInto(e.buf[e.pos:])
	}
	e.pos += n.EncodingLength()
}
