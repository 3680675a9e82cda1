package codec

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
)

// Kind classifies a registered type for the purposes of schema validation.
// It does not drive encoding itself — encoding is always performed by the
// hand-written (or generated) Marshal/Unmarshal pair for that type, or by
// the primitive Writer/Reader methods — but it lets SchemaRegistry catch
// configuration mistakes (an enum over a non-primitive, an unregistered
// nested type) before any traffic is sent.
type Kind int

const (
	KindPrimitive Kind = iota
	KindEnum
	KindSequence
	KindComposite
	KindOverride
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindSequence:
		return "sequence"
	case KindComposite:
		return "composite"
	case KindOverride:
		return "override"
	default:
		return "unknown"
	}
}

// TypeDescriptor records what SchemaRegistry learned about a registered
// Go type.
type TypeDescriptor struct {
	Name         string
	GoType       reflect.Type
	Kind         Kind
	HasOverride  bool // implements Marshaler/Unmarshaler
	FieldOrder   []string
}

var primitiveKinds = map[reflect.Kind]bool{
	reflect.Bool:    true,
	reflect.Int8:    true,
	reflect.Uint8:   true,
	reflect.Int16:   true,
	reflect.Uint16:  true,
	reflect.Int32:   true,
	reflect.Uint32:  true,
	reflect.Int64:   true,
	reflect.Uint64:  true,
	reflect.Float32: true,
	reflect.Float64: true,
	reflect.String:  true,
}

// SchemaRegistry is the pre-traffic registration table described in
// SPEC_FULL.md §1 ([MODULE codec]): every user type and every method
// parameter/return type must be walked and registered here before an
// endpoint exchanges any message. It is an explicit per-process (or
// per-test) value, never a package-level singleton — see SPEC_FULL.md's
// ambient "Concurrency guard" section and spec.md §9 on process-wide
// metadata tables.
type SchemaRegistry struct {
	mu    deadlock.Mutex
	types map[reflect.Type]*TypeDescriptor
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{types: make(map[reflect.Type]*TypeDescriptor)}
}

// Register walks v's type recursively — through pointers, slices, and
// struct fields in declaration order — and records a TypeDescriptor for
// every distinct type it encounters. Field enumeration order is captured
// verbatim from reflect.Type, which for a Go struct is always
// declaration order; this is what makes the resulting schema
// load-bearing-order-safe across two peers built from the same source.
func (s *SchemaRegistry) Register(v interface{}) error {
	t := reflect.TypeOf(v)
	if t == nil {
		return errors.Wrap(ErrSchemaViolation, "cannot register untyped nil")
	}
	return s.registerType(t)
}

func (s *SchemaRegistry) registerType(t reflect.Type) error {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s.mu.Lock()
	if _, ok := s.types[t]; ok {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	hasOverride := implementsOverride(t)

	switch {
	case hasOverride:
		s.store(&TypeDescriptor{Name: t.Name(), GoType: t, Kind: KindOverride, HasOverride: true})
		return nil

	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		s.store(&TypeDescriptor{Name: t.Name(), GoType: t, Kind: KindSequence})
		return s.registerType(t.Elem())

	case t.Kind() == reflect.Int || t.Kind() == reflect.Uint:
		// Go's machine-width int/uint are never used on the wire: every
		// primitive size is explicit. Treat as a schema violation so a
		// mistaken `int` field is caught at registration, not at encode
		// time deep inside a handler.
		return errors.Wrapf(ErrSchemaViolation, "type %s: platform-width int/uint has no fixed wire size, use int32/int64 etc.", t)

	case t.PkgPath() != "" && isNamedIntegerKind(t.Kind()):
		// A defined type (`type Color int32`) over an integer kind is an
		// enum on the wire, serialized as its declared underlying integer.
		s.store(&TypeDescriptor{Name: t.Name(), GoType: t, Kind: KindEnum})
		return nil

	case t.PkgPath() != "" && !primitiveKinds[t.Kind()] && t.Kind() != reflect.Struct:
		// A defined type over a non-primitive, non-struct kind (e.g. a
		// named map or chan) has no wire representation.
		return errors.Wrapf(ErrInvalidEnumUnderlyingType, "type %s", t)

	case primitiveKinds[t.Kind()]:
		s.store(&TypeDescriptor{Name: t.Name(), GoType: t, Kind: KindPrimitive})
		return nil

	case t.Kind() == reflect.Struct:
		order := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported, not part of the wire schema
			}
			order = append(order, f.Name)
			if err := s.registerType(f.Type); err != nil {
				return errors.Wrapf(err, "field %s.%s", t.Name(), f.Name)
			}
		}
		s.store(&TypeDescriptor{Name: t.Name(), GoType: t, Kind: KindComposite, FieldOrder: order})
		return nil

	default:
		return errors.Wrapf(ErrSchemaViolation, "unknown or unsupported type %s", t)
	}
}

func (s *SchemaRegistry) store(d *TypeDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[d.GoType] = d
}

// Lookup returns the descriptor registered for v's type, if any.
func (s *SchemaRegistry) Lookup(v interface{}) (*TypeDescriptor, bool) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.types[t]
	return d, ok
}

func isNamedIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16,
		reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64:
		return true
	default:
		return false
	}
}

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
)

func implementsOverride(t reflect.Type) bool {
	ptr := reflect.PtrTo(t)
	return (t.Implements(marshalerType) || ptr.Implements(marshalerType)) &&
		(t.Implements(unmarshalerType) || ptr.Implements(unmarshalerType))
}
