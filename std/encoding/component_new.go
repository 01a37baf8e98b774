package encoding

func NewBytesComponent(typ TLNum, val []byte) Component {
	return Component{
		Typ: typ,
		Val: val,
	}
}

func NewStringComponent(typ TLNum, val string) Component {
	return Component{
		Typ: typ,
		Val: []byte(val),
	}
}

func NewGenericComponent(val string) Component {
	return NewStringComponent(TypeGenericNameComponent, val)
}

func NewNumberComponent(typ TLNum, val uint64) Component {
	return Component{
		Typ: typ,
		Val: Nat(val).Bytes(),
	}
}

func NewSegmentComponent(seg uint64) Component {
	return NewNumberComponent(TypeSegmentNameComponent, seg)
}

func NewVersionComponent(v uint64) Component {
	return NewNumberComponent(TypeVersionNameComponent, v)
}

func NewTimestampComponent(t uint64) Component {
	return NewNumberComponent(TypeTimestampNameComponent, t)
}

// NewSequenceNumComponent returns a typed (0x3a) sequence number component.
func NewSequenceNumComponent(seq uint64) Component {
	return NewNumberComponent(TypeSequenceNumNameComponent, seq)
}

// NewMarkerSequenceComponent returns a GENERIC component holding the 0xFE
// marker followed by seq as a NonNegativeInteger.
func NewMarkerSequenceComponent(seq uint64) Component {
	n := Nat(seq)
	val := make([]byte, 1+n.EncodingLength())
	val[0] = SequenceNumMarker
	n.EncodeInto(val[1:])
	return Component{
		Typ: TypeGenericNameComponent,
		Val: val,
	}
}
