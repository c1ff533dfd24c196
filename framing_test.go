package colfer

import (
	"bytes"
	"errors"
	"testing"
)

// leaf is a minimal hand-written Message used to exercise Marshal/
// Unmarshal and nested/list-of-message framing without depending on the
// schema compiler.
type leaf struct {
	N int32
}

func (l *leaf) Size() int {
	b := NewBuffer()
	l.MarshalTo(b)
	return len(b.Bytes)
}

func (l *leaf) MarshalTo(b *Buffer) error {
	b.AppendInt32(0, l.N)
	b.End()
	return nil
}

func (l *leaf) UnmarshalFrom(r *Reader, limits Limits) error {
	for {
		id, flag := r.ReadHeader()
		switch id {
		case endMarker:
			return nil
		case 0:
			l.N = r.ReadInt32(flag)
		default:
			return ErrUnknownField
		}
	}
}

// outer nests a leaf and a list of leaves, exercising both the
// "Nested message" and "list-of-struct" framing rules from spec §4.3.
type outer struct {
	Tag      int32
	Child    *leaf
	Children []*leaf
}

func (o *outer) Size() int {
	b := NewBuffer()
	o.MarshalTo(b)
	return len(b.Bytes)
}

func (o *outer) MarshalTo(b *Buffer) error {
	b.AppendInt32(0, o.Tag)
	if o.Child != nil {
		b.StructHeader(1)
		if err := o.Child.MarshalTo(b); err != nil {
			return err
		}
	}
	if len(o.Children) > 0 {
		b.StructListHeader(2, len(o.Children))
		for _, c := range o.Children {
			if err := c.MarshalTo(b); err != nil {
				return err
			}
		}
	}
	b.End()
	return nil
}

func (o *outer) UnmarshalFrom(r *Reader, limits Limits) error {
	for {
		id, flag := r.ReadHeader()
		switch id {
		case endMarker:
			return nil
		case 0:
			o.Tag = r.ReadInt32(flag)
		case 1:
			o.Child = &leaf{}
			if err := o.Child.UnmarshalFrom(r, limits); err != nil {
				return err
			}
		case 2:
			n := r.ReadStructListCount(limits)
			o.Children = make([]*leaf, n)
			for i := range o.Children {
				c := &leaf{}
				if err := c.UnmarshalFrom(r, limits); err != nil {
					return err
				}
				o.Children[i] = c
			}
		default:
			return ErrUnknownField
		}
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	v := &outer{
		Tag:   7,
		Child: &leaf{N: -42},
		Children: []*leaf{
			{N: 1},
			{N: 2},
			{N: 0}, // default-valued leaf, still framed (count is explicit)
		},
	}
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) != v.Size() {
		t.Fatalf("Marshal produced %d bytes, Size() = %d", len(data), v.Size())
	}

	var got outer
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Tag != v.Tag || got.Child == nil || got.Child.N != v.Child.N {
		t.Fatalf("got %+v", got)
	}
	if len(got.Children) != len(v.Children) {
		t.Fatalf("got %d children, want %d", len(got.Children), len(v.Children))
	}
	for i, c := range got.Children {
		if c.N != v.Children[i].N {
			t.Fatalf("child %d: got %d, want %d", i, c.N, v.Children[i].N)
		}
	}
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	data, err := Marshal(&leaf{N: 3})
	if err != nil {
		t.Fatal(err)
	}
	data = append(data, 0x00)

	var got leaf
	if err := Unmarshal(data, &got); err == nil {
		t.Fatal("expected an error for trailing bytes, got nil")
	}
}

func TestUnmarshalUnknownFieldID(t *testing.T) {
	b := NewBuffer()
	b.AppendInt32(9, 5) // field id 9 is not declared on leaf
	b.End()

	var got leaf
	err := Unmarshal(b.Bytes, &got)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v, want an ErrMalformed-wrapping error", err)
	}
}

func TestUnmarshalShortInput(t *testing.T) {
	var got leaf
	err := Unmarshal([]byte{0x00}, &got) // header with no payload or end marker
	if err == nil {
		t.Fatal("expected a short-input error, got nil")
	}
	if !errors.Is(err, ErrShortInput) {
		t.Fatalf("got %v, want ErrShortInput", err)
	}
}

func TestUnmarshalWithLimitsRejectsOversizedMessage(t *testing.T) {
	data, err := Marshal(&leaf{N: 1})
	if err != nil {
		t.Fatal(err)
	}
	limits := Limits{MaxSize: 1}
	err = UnmarshalWithLimits(data, &leaf{}, limits)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("got %v, want ErrLimitExceeded", err)
	}
}

func TestUnmarshalWithLimitsRejectsOversizedList(t *testing.T) {
	v := &outer{Children: []*leaf{{N: 1}, {N: 2}, {N: 3}}}
	data, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	limits := Limits{MaxListSize: 1}
	err = UnmarshalWithLimits(data, &outer{}, limits)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("got %v, want ErrLimitExceeded", err)
	}
}

func TestEndMarkerNeverEmittedMidMessage(t *testing.T) {
	// A Buffer encoding any combination of non-default fields below id
	// 127 never emits the byte 0x7F except as the final end marker,
	// since every header's low 7 bits are a declared field id <= 126.
	b := NewBuffer()
	b.AppendInt32(5, 1)
	b.AppendBool(6, true)
	b.AppendText(1, "x")
	b.End()
	for i, by := range b.Bytes[:len(b.Bytes)-1] {
		if by == endMarker {
			// A text/binary payload byte may legitimately equal 0x7F;
			// only header bytes are constrained. Headers occur at
			// known offsets here: 0, 2, 3 given the field sizes above.
			if i != 0 && i != 2 && i != 3 {
				continue
			}
			t.Fatalf("header byte at offset %d equals the end marker", i)
		}
	}
	if b.Bytes[len(b.Bytes)-1] != endMarker {
		t.Fatal("message does not end with the end marker")
	}
}

func TestBufferResetReusesArray(t *testing.T) {
	b := NewBuffer()
	b.AppendBool(0, true)
	b.End()
	arr := b.Bytes
	b.Reset()
	if len(b.Bytes) != 0 {
		t.Fatalf("Reset left %d bytes", len(b.Bytes))
	}
	b.AppendBool(0, true)
	b.End()
	if &b.Bytes[0] != &arr[0] || !bytes.Equal(b.Bytes, arr[:len(b.Bytes)]) {
		t.Fatal("Reset did not reuse the underlying array")
	}
}
