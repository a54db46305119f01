package scripts

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/reusee/hintvm/memories"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToStarlark converts a scope value to a script value.
func ToStarlark(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case memories.Address:
		return Relocatable{Address: v}
	case memories.Felt:
		return starlark.MakeBigInt(v.Big())
	case *big.Int:
		if v == nil {
			return starlark.None
		}
		return starlark.MakeBigInt(v)

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)

	case float64:
		return starlark.Float(v)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = ToStarlark(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), ToStarlark(val))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = ToStarlark(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				ToStarlark(iter.Key().Interface()),
				ToStarlark(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				ToStarlark(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return ToStarlark(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// FromStarlark converts a script value to a scope value.
// Values without a Go counterpart are frozen and kept as is.
func FromStarlark(v starlark.Value) any {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil

	case starlark.Bool:
		return bool(v)

	case starlark.Int:
		return v.BigInt()

	case starlark.Float:
		return float64(v)

	case starlark.String:
		return string(v)

	case starlark.Bytes:
		return []byte(v)

	case Relocatable:
		return v.Address

	case *starlark.List:
		ret := make([]any, 0, v.Len())
		for i := range v.Len() {
			ret = append(ret, FromStarlark(v.Index(i)))
		}
		return ret

	case starlark.Tuple:
		ret := make([]any, 0, len(v))
		for _, e := range v {
			ret = append(ret, FromStarlark(e))
		}
		return ret

	case *starlark.Dict:
		ret := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				v.Freeze()
				return v
			}
			ret[string(key)] = FromStarlark(item[1])
		}
		return ret

	}

	v.Freeze()
	return v
}

// toMemoryValue converts a script value to a cell value.
func toMemoryValue(v starlark.Value) (memories.Value, error) {
	switch v := v.(type) {
	case starlark.Int:
		return memories.FeltFromBig(v.BigInt()), nil
	case Relocatable:
		return v.Address, nil
	}
	return nil, fmt.Errorf("cannot store %s in memory", v.Type())
}

func fromMemoryValue(v memories.Value) starlark.Value {
	if v == nil {
		return starlark.None
	}
	return ToStarlark(v)
}

func toAddress(v starlark.Value) (memories.Address, error) {
	r, ok := v.(Relocatable)
	if !ok {
		return memories.Address{}, fmt.Errorf("expected relocatable, got %s", v.Type())
	}
	return r.Address, nil
}
