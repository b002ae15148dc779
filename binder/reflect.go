package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// lookup returns the raw values for a parameter name, nil when absent.
type lookup func(name string) []string

func lookupValues(values map[string][]string) lookup {
	return func(name string) []string { return values[name] }
}

// bindToStruct sets every exported field of the struct pointed to by v whose
// tagName tag resolves to a present value. Untagged embedded structs are
// walked recursively; other untagged fields are skipped.
func bindToStruct(v any, tagName string, get lookup, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}
	return bindFields(rv, tagName, get, bindErr)
}

func bindFields(rv reflect.Value, tagName string, get lookup, bindErr error) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)

		tag, hasTag := sf.Tag.Lookup(tagName)
		if !hasTag && sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if err := bindFields(field, tagName, get, bindErr); err != nil {
				return err
			}
			continue
		}
		if !field.CanSet() || !hasTag {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}

		values := get(name)
		if len(values) == 0 {
			continue
		}
		if err := setFieldValue(field, sf.Type, values); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Ptr:
		ptr := reflect.New(typ.Elem())
		if err := setFieldValue(ptr.Elem(), typ.Elem(), values); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	case reflect.Slice:
		return setSliceValue(field, typ, values)
	}

	value := values[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}
	return nil
}

// parseBool accepts strconv forms plus the on/off and yes/no values HTML
// forms send.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

func setSliceValue(field reflect.Value, typ reflect.Type, values []string) error {
	var items []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}

	slice := reflect.MakeSlice(typ, len(items), len(items))
	for i, item := range items {
		if err := setFieldValue(slice.Index(i), typ.Elem(), []string{item}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
