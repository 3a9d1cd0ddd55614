package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrStrict 输入不满足严格解码规则
//
// 严格解码在 encoding/json 之上补充三条规则：
//   - 对象内不允许重复键
//   - 结构体字段名区分大小写，仅大小写不同的键视为错误
//   - 结构体字段必须出现，除非字段为指针或标签带 optional/omitempty
//
// 此外标量与结构体不接受 null。实现了 json.Unmarshaler 的类型自行负责校验。
var ErrStrict = errors.New("jsonx: strict decode")

// UnmarshalStrict 按严格规则反序列化
func UnmarshalStrict(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrStrict)
	}
	if err := check(bytes.TrimSpace(data), rv.Type().Elem()); err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// ObjectKeys 按出现顺序返回对象的键和值，重复键返回错误
func ObjectKeys(data []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("%w: expected object", ErrStrict)
	}

	var (
		keys   []string
		values []json.RawMessage
		seen   = make(map[string]struct{})
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)
		if _, dup := seen[key]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate field `%s`", ErrStrict, key)
		}
		seen[key] = struct{}{}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("jsonx: trailing data after value at offset %d", dec.InputOffset())
	}
	return keys, values, nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func isNull(data []byte) bool {
	return bytes.Equal(data, []byte("null"))
}

func check(data []byte, t reflect.Type) error {
	if t.Kind() == reflect.Pointer {
		if isNull(data) {
			return nil
		}
		t = t.Elem()
	}
	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		return nil
	case reflect.Slice, reflect.Array:
		if isNull(data) {
			return nil
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		for _, e := range elems {
			if err := check(bytes.TrimSpace(e), t.Elem()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if isNull(data) {
			return nil
		}
		_, values, err := ObjectKeys(data)
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := check(bytes.TrimSpace(v), t.Elem()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return checkStruct(data, t)
	default:
		if isNull(data) {
			return fmt.Errorf("%w: invalid type: null, expected %s", ErrStrict, t.Kind())
		}
		return nil
	}
}

func checkStruct(data []byte, t reflect.Type) error {
	if isNull(data) {
		return fmt.Errorf("%w: invalid type: null, expected struct %s", ErrStrict, t.Name())
	}
	keys, values, err := ObjectKeys(data)
	if err != nil {
		return err
	}

	fields := fieldsOf(t)
	present := make(map[string]struct{}, len(keys))
	for i, key := range keys {
		f, ok := fields.byName[key]
		if !ok {
			if folded, clash := fields.byFold[strings.ToLower(key)]; clash {
				return fmt.Errorf("%w: unknown field `%s`, expected `%s`", ErrStrict, key, folded.name)
			}
			continue
		}
		present[key] = struct{}{}
		if err := check(bytes.TrimSpace(values[i]), f.typ); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	for _, f := range fields.list {
		if _, ok := present[f.name]; !ok && f.required {
			return fmt.Errorf("%w: missing field `%s`", ErrStrict, f.name)
		}
	}
	return nil
}

// ============================================================================
//                              字段缓存
// ============================================================================

type field struct {
	name     string
	typ      reflect.Type
	required bool
}

type structFields struct {
	list   []field
	byName map[string]field
	byFold map[string]field
}

var fieldCache sync.Map // reflect.Type -> *structFields

func fieldsOf(t reflect.Type) *structFields {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*structFields)
	}

	sf := &structFields{byName: map[string]field{}, byFold: map[string]field{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		optional := f.Type.Kind() == reflect.Pointer
		for _, opt := range strings.Split(opts, ",") {
			if opt == "optional" || opt == "omitempty" {
				optional = true
			}
		}
		fd := field{name: name, typ: f.Type, required: !optional}
		sf.list = append(sf.list, fd)
		sf.byName[name] = fd
		sf.byFold[strings.ToLower(name)] = fd
	}

	actual, _ := fieldCache.LoadOrStore(t, sf)
	return actual.(*structFields)
}
