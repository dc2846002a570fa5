package graphyaml

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"true-clone/internal/common"
	"true-clone/object"
	"true-clone/utils"
)

// Local tags understood by the loader.
const (
	TagMap        = "!map"
	TagSet        = "!set"
	TagBox        = "!box"
	TagBigInt     = "!bigint"
	TagSymbol     = "!symbol"
	TagRegExp     = "!regexp"
	TagDate       = "!date"
	TagError      = "!error"
	TagBuffer     = "!buffer"
	TagTypedArray = "!typedarray"
	TagDataView   = "!dataview"
	TagHole       = "!hole"
	TagFrozen     = "!frozen"
	TagSealed     = "!sealed"
	TagFixed      = "!fixed"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrUnknownTag    = errors.New("unknown tag")
	ErrBadNode       = errors.New("unexpected node")
)

// LoadFile loads and parses a YAML graph file from the given path.
func LoadFile(path string, realm *object.Realm) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	return Parse(data, realm)
}

// Parse builds the value graph described by the first YAML document in data.
// Composites are created through realm.
func Parse(data []byte, realm *object.Realm) (any, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph YAML: %w", err)
	}

	root, ok := common.First(doc.Content)
	if !ok {
		return nil, fmt.Errorf("failed to parse graph YAML: %w", ErrEmptyDocument)
	}

	l := &loader{
		realm:   realm,
		nodes:   make(map[*yaml.Node]any),
		symbols: make(map[string]*object.Symbol),
	}

	v, err := l.value(root)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}

	return v, nil
}

type loader struct {
	realm   *object.Realm
	nodes   map[*yaml.Node]any
	symbols map[string]*object.Symbol
}

func nodeErr(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d column %d: %w", n.Line, n.Column, err)
}

func (l *loader) value(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return l.value(n.Alias)
	}
	if v, ok := l.nodes[n]; ok {
		return v, nil
	}

	switch n.Kind {
	case yaml.ScalarNode:
		v, err := l.scalar(n)
		if err != nil {
			return nil, nodeErr(n, err)
		}
		if _, ok := v.(object.Composite); ok {
			l.nodes[n] = v
		}
		return v, nil
	case yaml.SequenceNode:
		return l.sequence(n)
	case yaml.MappingNode:
		return l.mapping(n)
	default:
		return nil, nodeErr(n, fmt.Errorf("%w: kind %d", ErrBadNode, n.Kind))
	}
}

func (l *loader) scalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case TagBigInt:
		b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("invalid big integer %q", n.Value)
		}
		return b, nil

	case TagSymbol:
		if s, ok := l.symbols[n.Value]; ok {
			return s, nil
		}
		s := object.NewSymbol(n.Value)
		l.symbols[n.Value] = s
		return s, nil

	case TagRegExp:
		src, flags, err := splitRegExp(n.Value)
		if err != nil {
			return nil, err
		}
		return l.realm.RegExp(src, flags)

	case TagDate:
		return l.date(n.Value)

	case TagError:
		name, message := utils.Unpack2(strings.SplitN(n.Value, ":", 2))
		kind, err := object.ParseErrorKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		return l.realm.Error(kind, strings.TrimSpace(message)), nil

	case TagBox:
		v, err := l.scalar(untagged(n))
		if err != nil {
			return nil, err
		}
		return l.realm.Box(v)

	case TagBuffer, "!!binary":
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 buffer: %w", err)
		}
		return l.realm.ArrayBuffer(data), nil
	}

	switch n.ShortTag() {
	case "!!null":
		return object.Null, nil

	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err

	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0)
			if !ok {
				return nil, err
			}
			return b, nil
		}
		if i > 1<<53 || i < -(1<<53) {
			return big.NewInt(i), nil
		}
		return float64(i), nil

	case "!!float":
		// integers too wide for 64 bits resolve as floats
		if b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 10); ok {
			return b, nil
		}
		var f float64
		err := n.Decode(&f)
		return f, err

	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return object.DateOf(l.realm.DatePrototype, t), nil

	case "!!str":
		return n.Value, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, n.Tag)
	}
}

// untagged returns a copy of n whose tag is resolved from its value alone.
func untagged(n *yaml.Node) *yaml.Node {
	c := *n
	c.Tag = ""
	c.Style &^= yaml.TaggedStyle

	return &c
}

func splitRegExp(lit string) (source, flags string, err error) {
	end := strings.LastIndexByte(lit, '/')
	if !strings.HasPrefix(lit, "/") || end < 1 {
		return "", "", fmt.Errorf("regular expression %q is not of the form /source/flags", lit)
	}

	return lit[1:end], lit[end+1:], nil
}

func (l *loader) date(v string) (*object.Date, error) {
	switch strings.ToLower(v) {
	case "", "invalid", "nan":
		return l.realm.Date(math.NaN()), nil
	}

	if ms, err := strconv.ParseFloat(v, 64); err == nil {
		return l.realm.Date(ms), nil
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", v, err)
	}

	return object.DateOf(l.realm.DatePrototype, t), nil
}

func (l *loader) sequence(n *yaml.Node) (any, error) {
	switch n.Tag {
	case TagSet:
		s := l.realm.Set()
		l.nodes[n] = s
		for _, item := range n.Content {
			v, err := l.value(item)
			if err != nil {
				return nil, err
			}
			s.Add(v)
		}
		return s, nil

	case TagBuffer:
		data := make([]byte, 0, len(n.Content))
		for _, item := range n.Content {
			var b uint8
			if err := item.Decode(&b); err != nil {
				return nil, nodeErr(item, err)
			}
			data = append(data, b)
		}
		buf := l.realm.ArrayBuffer(data)
		l.nodes[n] = buf
		return buf, nil

	case "", "!!seq", TagFrozen, TagSealed, TagFixed:
	default:
		return nil, nodeErr(n, fmt.Errorf("%w: %s on a sequence", ErrUnknownTag, n.Tag))
	}

	a := l.realm.Array()
	l.nodes[n] = a

	for i, item := range n.Content {
		if item.Tag == TagHole {
			a.SetLen(i + 1)
			continue
		}

		v, err := l.value(item)
		if err != nil {
			return nil, err
		}
		if err := a.SetAt(i, v); err != nil {
			return nil, nodeErr(item, err)
		}
	}

	restrict(a.Base(), n.Tag)

	return a, nil
}

func (l *loader) mapping(n *yaml.Node) (any, error) {
	switch n.Tag {
	case TagMap:
		return l.mapEntries(n)
	case TagError:
		return l.errorObject(n)
	case TagTypedArray:
		return l.typedArray(n)
	case TagDataView:
		return l.dataView(n)
	case "", "!!map", TagFrozen, TagSealed, TagFixed:
	default:
		return nil, nodeErr(n, fmt.Errorf("%w: %s on a mapping", ErrUnknownTag, n.Tag))
	}

	o := l.realm.Object()
	l.nodes[n] = o

	if err := l.properties(o.Base(), n.Content); err != nil {
		return nil, err
	}

	restrict(o, n.Tag)

	return o, nil
}

// properties defines one own data property per key/value pair.
func (l *loader) properties(o *object.Object, pairs []*yaml.Node) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		k, v := pairs[i], pairs[i+1]

		key, err := l.key(k)
		if err != nil {
			return err
		}

		val, err := l.value(v)
		if err != nil {
			return err
		}

		if err := o.DefineProperty(key, object.Data(val)); err != nil {
			return nodeErr(k, err)
		}
	}

	return nil
}

func (l *loader) key(n *yaml.Node) (object.PropertyKey, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return object.PropertyKey{}, nodeErr(n, fmt.Errorf("%w: property keys must be scalars", ErrBadNode))
	}

	if n.Tag == TagSymbol {
		v, err := l.value(n)
		if err != nil {
			return object.PropertyKey{}, err
		}
		return object.SymbolKey(v.(*object.Symbol)), nil
	}

	return object.Key(n.Value), nil
}

func (l *loader) mapEntries(n *yaml.Node) (*object.Map, error) {
	m := l.realm.Map()
	l.nodes[n] = m

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, err := l.value(n.Content[i])
		if err != nil {
			return nil, err
		}

		v, err := l.value(n.Content[i+1])
		if err != nil {
			return nil, err
		}

		m.Set(k, v)
	}

	return m, nil
}

// errorObject reads the mapping form of an error:
//
//	!error {kind: TypeError, message: boom, stack: "...", cause: *other}
func (l *loader) errorObject(n *yaml.Node) (*object.Error, error) {
	fields := fieldNodes(n)

	kind := object.PlainError
	if k, ok := fields["kind"]; ok {
		var err error
		if kind, err = object.ParseErrorKind(k.Value); err != nil {
			return nil, nodeErr(k, err)
		}
	}

	var message string
	if m, ok := fields["message"]; ok {
		message = m.Value
	}

	e := l.realm.Error(kind, message)
	l.nodes[n] = e

	if s, ok := fields["stack"]; ok {
		e.SetStack(s.Value)
	}

	if c, ok := fields["cause"]; ok {
		cause, err := l.value(c)
		if err != nil {
			return nil, err
		}
		if err := e.DefineProperty(object.CauseKey, object.DataDescriptor{
			Value: cause,
			Attrs: object.Writable | object.Configurable,
		}); err != nil {
			return nil, nodeErr(c, err)
		}
	}

	return e, nil
}

// typedArray reads
//
//	!typedarray {kind: Uint8Array, buffer: *buf, offset: 0, length: 4}
//
// When length is omitted the view runs to the end of the buffer.
func (l *loader) typedArray(n *yaml.Node) (*object.TypedArray, error) {
	fields := fieldNodes(n)

	kind, err := parseElementKind(fields["kind"])
	if err != nil {
		return nil, nodeErr(n, err)
	}

	buf, offset, length, err := l.window(n, fields, kind.Size())
	if err != nil {
		return nil, err
	}

	t, err := l.realm.TypedArray(kind, buf, offset, length)
	if err != nil {
		return nil, nodeErr(n, err)
	}
	l.nodes[n] = t

	return t, nil
}

func (l *loader) dataView(n *yaml.Node) (*object.DataView, error) {
	buf, offset, length, err := l.window(n, fieldNodes(n), 1)
	if err != nil {
		return nil, err
	}

	v, err := l.realm.DataView(buf, offset, length)
	if err != nil {
		return nil, nodeErr(n, err)
	}
	l.nodes[n] = v

	return v, nil
}

func (l *loader) window(n *yaml.Node, fields map[string]*yaml.Node, size int) (*object.ArrayBuffer, int, int, error) {
	bn, ok := fields["buffer"]
	if !ok {
		return nil, 0, 0, nodeErr(n, object.ErrNoBuffer)
	}

	bv, err := l.value(bn)
	if err != nil {
		return nil, 0, 0, err
	}

	buf, ok := bv.(*object.ArrayBuffer)
	if !ok {
		return nil, 0, 0, nodeErr(bn, fmt.Errorf("%w: buffer is %T", ErrBadNode, bv))
	}

	var offset int
	if on, ok := fields["offset"]; ok {
		if err := on.Decode(&offset); err != nil {
			return nil, 0, 0, nodeErr(on, err)
		}
	}

	length := (buf.ByteLength() - offset) / size
	if ln, ok := fields["length"]; ok {
		if err := ln.Decode(&length); err != nil {
			return nil, 0, 0, nodeErr(ln, err)
		}
	}

	return buf, offset, length, nil
}

func fieldNodes(n *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := n.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias.Kind == yaml.ScalarNode {
			v = v.Alias
		}
		fields[n.Content[i].Value] = v
	}

	return fields
}

func parseElementKind(n *yaml.Node) (object.ElementKind, error) {
	if n == nil {
		return 0, object.ErrElementKind
	}

	for k := object.Int8; k <= object.BigUint64; k++ {
		if k.String() == n.Value || strings.TrimSuffix(k.String(), "Array") == n.Value {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", object.ErrElementKind, n.Value)
}

func restrict(o *object.Object, tag string) {
	switch tag {
	case TagFrozen:
		o.Freeze()
	case TagSealed:
		o.Seal()
	case TagFixed:
		o.PreventExtensions()
	}
}
