package encoding

// Decoder reads TLV elements from a buffer without copying.
// Offsets reported by Offset are relative to the outermost buffer,
// so nested decoders can record signed regions.
type Decoder struct {
	buf  Buffer
	pos  int
	base int
}

func NewDecoder(buf Buffer) Decoder {
	return Decoder{buf: buf}
}

// Offset returns the absolute position of the next unread byte.
func (d *Decoder) Offset() int {
	return d.base + d.pos
}

func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

func (d *Decoder) readTLNum() (TLNum, error) {
	v, n, err := ParseTLNum(d.buf[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

// ReadTL reads a TLV header and checks that the value fits in the remaining buffer.
func (d *Decoder) ReadTL() (typ TLNum, l int, err error) {
	typ, err = d.readTLNum()
	if err != nil {
		return 0, 0, err
	}
	ln, err := d.readTLNum()
	if err != nil {
		return 0, 0, err
	}
	if ln > TLNum(d.Remaining()) {
		return 0, 0, ErrBufferOverflow
	}
	return typ, int(ln), nil
}

// PeekType returns the type of the next element without consuming it.
func (d *Decoder) PeekType() (TLNum, bool) {
	v, _, err := ParseTLNum(d.buf[d.pos:])
	return v, err == nil
}

// ReadBuf returns the next l bytes. The caller must have checked l via ReadTL.
func (d *Decoder) ReadBuf(l int) Buffer {
	ret := d.buf[d.pos : d.pos+l : d.pos+l]
	d.pos += l
	return ret
}

func (d *Decoder) Skip(l int) {
	d.pos += l
}

// Enter returns a decoder over the next l bytes and advances past them.
func (d *Decoder) Enter(l int) Decoder {
	sub := Decoder{
		buf:  d.buf[d.pos : d.pos+l],
		base: d.base + d.pos,
	}
	d.pos += l
	return sub
}

// ReadNat reads a NonNegativeInteger value of length l.
func (d *Decoder) ReadNat(l int) (Nat, error) {
	return ParseNat(d.ReadBuf(l))
}

// ReadTLV reads one whole element and returns its type and value.
func (d *Decoder) ReadTLV() (TLNum, Buffer, error) {
	typ, l, err := d.ReadTL()
	if err != nil {
		return 0, nil, err
	}
	return typ, d.ReadBuf(l), nil
}

// SkipUnknown discards an element of type typ and length l, or rejects it
// when the type is critical.
func (d *Decoder) SkipUnknown(typ TLNum, l int) error {
	if typ.IsCritical() {
		return ErrUnrecognizedField{TypeNum: typ}
	}
	d.Skip(l)
	return nil
}

func (d *Decoder) ReadComponent() (Component, error) {
	typ, l, err := d.ReadTL()
	if err != nil {
		return Component{}, err
	}
	if typ == TypeInvalidComponent || typ > 0xffff {
		return Component{}, ErrFormat{"invalid component type"}
	}
	return Component{
		Typ: typ,
		Val: d.ReadBuf(l),
	}, nil
}

// ReadNameValue decodes l bytes of Name value into *dst, reusing its storage.
// A non-nil *dst may not grow beyond its capacity; item names the capacity in
// the returned ErrCapacity. last is the offset of the final component, or the
// end of the value when the name is empty.
func (d *Decoder) ReadNameValue(l int, dst *Name, item string) (last int, err error) {
	bounded := *dst != nil
	limit := cap(*dst)
	*dst = (*dst)[:0]
	sub := d.Enter(l)
	last = sub.Offset()
	for !sub.EOF() {
		last = sub.Offset()
		c, err := sub.ReadComponent()
		if err != nil {
			return 0, err
		}
		if bounded && len(*dst) == limit {
			return 0, ErrCapacity{Item: item, Max: limit}
		}
		*dst = append(*dst, c)
	}
	if len(*dst) == 0 {
		last = sub.Offset()
	}
	return last, nil
}
