package pack

import (
	"fmt"

	"github.com/rony4d/go-bitpack/utils/buffer"
)

// Member is one named entry of a Struct. A positive Count turns the member
// into an array of Count consecutive fields.
type Member struct {
	Name  string
	Field Field
	Count int
}

type member struct {
	name  string
	first int // index of the first slot in the flattened format
	count int // 0 for scalars
}

// Struct is a record of named fields laid out with the same cursor rules as
// a compiled format string.
type Struct struct {
	format  *Format
	members []member
	index   map[string]int
}

// NewStruct lays out the members in order. Names must be unique and non-empty.
func NewStruct(members ...Member) (*Struct, error) {
	var (
		l     layout
		s     = &Struct{index: make(map[string]int, len(members))}
		names = make([]string, 0, len(members))
	)
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrMember)
		}
		if _, dup := s.index[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrMember, m.Name)
		}
		if m.Field.kind == 0 {
			return nil, fmt.Errorf("%w: %q has no field", ErrMember, m.Name)
		}
		if m.Count < 0 {
			return nil, fmt.Errorf("%w: %q has negative count %d", ErrMember, m.Name, m.Count)
		}
		s.index[m.Name] = len(s.members)
		s.members = append(s.members, member{name: m.Name, first: len(l.slots), count: m.Count})
		n := m.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			l.add(m.Field)
		}
		names = append(names, m.Name)
	}
	s.format = &Format{source: fmt.Sprintf("Struct%v", names), slots: l.slots, bits: l.cursor}
	return s, nil
}

// MustStruct is like NewStruct but panics on error.
func MustStruct(members ...Member) *Struct {
	s, err := NewStruct(members...)
	if err != nil {
		panic(err)
	}
	return s
}

// Format returns the flattened field sequence.
func (s *Struct) Format() *Format { return s.format }

// Size returns the record length in whole bytes.
func (s *Struct) Size() int { return s.format.Size() }

// BitSize returns the record length in bits.
func (s *Struct) BitSize() int { return s.format.BitSize() }

// Names returns member names in layout order.
func (s *Struct) Names() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = m.name
	}
	return out
}

// Field returns the placed field of a member and its bit offset from the
// record start.
func (s *Struct) Field(name string) (Field, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, 0, false
	}
	sl := s.format.slots[s.members[i].first]
	return sl.field, sl.bit, true
}

// Decode reads every member at byte pos. Array members decode to
// []interface{}.
func (s *Struct) Decode(buf *buffer.Buffer, pos int) (map[string]interface{}, error) {
	flat, err := s.format.Decode(buf, pos)
	if err != nil {
		return nil, s.rename(err)
	}
	out := make(map[string]interface{}, len(s.members))
	for _, m := range s.members {
		if m.count == 0 {
			out[m.name] = flat[m.first]
			continue
		}
		arr := make([]interface{}, m.count)
		copy(arr, flat[m.first:m.first+m.count])
		out[m.name] = arr
	}
	return out, nil
}

// Encode writes the given members at byte pos. Members missing from values
// keep their current content. Unknown names fail the whole call before
// anything is written.
func (s *Struct) Encode(buf *buffer.Buffer, pos int, values map[string]interface{}) error {
	for name := range values {
		if _, ok := s.index[name]; !ok {
			return fmt.Errorf("%w: unknown member %q", ErrMember, name)
		}
	}
	window, err := buf.Read(pos, s.Size())
	if err != nil {
		return err
	}
	scratch := buffer.FromBytes(window)
	for _, m := range s.members {
		v, ok := values[m.name]
		if !ok {
			continue
		}
		if err := s.encodeMember(scratch, m, v); err != nil {
			return err
		}
	}
	return buf.Write(pos, scratch.Bytes())
}

func (s *Struct) encodeMember(scratch *buffer.Buffer, m member, v interface{}) error {
	if m.count == 0 {
		sl := s.format.slots[m.first]
		return withField(sl.field.Encode(scratch, sl.bit/8, v), m.first, m.name)
	}
	arr, ok := v.([]interface{})
	if !ok {
		return withField(fmt.Errorf("%w: %T for array member", ErrValueType, v), m.first, m.name)
	}
	if len(arr) != m.count {
		return withField(fmt.Errorf("%w: want %d elements, got %d", ErrValueCount, m.count, len(arr)), m.first, m.name)
	}
	for i, e := range arr {
		sl := s.format.slots[m.first+i]
		if err := sl.field.Encode(scratch, sl.bit/8, e); err != nil {
			return withField(withField(err, i, ""), m.first, m.name)
		}
	}
	return nil
}

// rename replaces the flat slot index in a FieldError path with the member name.
func (s *Struct) rename(err error) error {
	fe, ok := err.(*FieldError)
	if !ok {
		return err
	}
	for _, m := range s.members {
		if fe.Index < m.first || (m.count == 0 && fe.Index != m.first) || (m.count > 0 && fe.Index >= m.first+m.count) {
			continue
		}
		if m.count == 0 {
			fe.Path = m.name
		} else {
			fe.Path = fmt.Sprintf("%s.#%d", m.name, fe.Index-m.first)
		}
		break
	}
	return fe
}
