package scripts

import (
	"fmt"
	"math/big"

	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/memories"
	"go.starlark.net/starlark"
)

type proxyValue struct {
	name string
}

func (p proxyValue) String() string {
	return "<" + p.name + ">"
}

func (p proxyValue) Type() string {
	return p.name
}

func (p proxyValue) Freeze() {}

func (p proxyValue) Truth() starlark.Bool {
	return starlark.True
}

func (p proxyValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", p.name)
}

// memoryValue exposes memory[addr], memory[addr] = v and memory.get(addr, default).
type memoryValue struct {
	proxyValue
	proxy bridges.MemoryProxy
}

var (
	_ starlark.HasSetKey = memoryValue{}
	_ starlark.HasAttrs  = memoryValue{}
)

func (m memoryValue) Get(k starlark.Value) (starlark.Value, bool, error) {
	addr, err := toAddress(k)
	if err != nil {
		return nil, false, err
	}
	value, err := m.proxy.Read(addr)
	if err != nil {
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	return fromMemoryValue(value), true, nil
}

func (m memoryValue) SetKey(k, v starlark.Value) error {
	addr, err := toAddress(k)
	if err != nil {
		return err
	}
	value, err := toMemoryValue(v)
	if err != nil {
		return err
	}
	return m.proxy.Write(addr, value)
}

func (m memoryValue) Attr(name string) (starlark.Value, error) {
	if name != "get" {
		return nil, nil
	}
	return starlark.NewBuiltin("get", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var key starlark.Value
		var def starlark.Value = starlark.None
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "key", &key, "default?", &def); err != nil {
			return nil, err
		}
		v, ok, err := m.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return def, nil
		}
		return v, nil
	}), nil
}

func (m memoryValue) AttrNames() []string {
	return []string{"get"}
}

// idsValue exposes hint identifiers as attributes.
type idsValue struct {
	proxyValue
	proxy bridges.IDsProxy
}

var _ starlark.HasSetField = idsValue{}

func (i idsValue) Attr(name string) (starlark.Value, error) {
	value, err := i.proxy.Read(name)
	if err != nil {
		return nil, err
	}
	return fromMemoryValue(value), nil
}

func (i idsValue) AttrNames() []string {
	return nil
}

func (i idsValue) SetField(name string, v starlark.Value) error {
	value, err := toMemoryValue(v)
	if err != nil {
		return err
	}
	return i.proxy.Write(name, value)
}

type moduleValue struct {
	proxyValue
	funcs map[string]*starlark.Builtin
}

func (m moduleValue) Attr(name string) (starlark.Value, error) {
	if fn, ok := m.funcs[name]; ok {
		return fn, nil
	}
	return nil, nil
}

func (m moduleValue) AttrNames() []string {
	ret := make([]string, 0, len(m.funcs))
	for name := range m.funcs {
		ret = append(ret, name)
	}
	return ret
}

func segmentsModule(proxy bridges.SegmentsProxy) moduleValue {
	return moduleValue{
		proxyValue: proxyValue{name: "segments"},
		funcs: map[string]*starlark.Builtin{

			"add": starlark.NewBuiltin("add", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
					return nil, err
				}
				base, err := proxy.Add()
				if err != nil {
					return nil, err
				}
				return Relocatable{Address: base}, nil
			}),

			"write_arg": starlark.NewBuiltin("write_arg", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var ptr Relocatable
				var arg starlark.Iterable
				if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "ptr", &ptr, "arg", &arg); err != nil {
					return nil, err
				}
				var values []memories.Value
				iter := arg.Iterate()
				defer iter.Done()
				var elem starlark.Value
				for iter.Next(&elem) {
					value, err := toMemoryValue(elem)
					if err != nil {
						return nil, err
					}
					values = append(values, value)
				}
				if err := proxy.WriteArg(ptr.Address, values); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		},
	}
}

func signaturesModule(proxy bridges.SignaturesProxy) moduleValue {
	return moduleValue{
		proxyValue: proxyValue{name: "ecdsa_builtin"},
		funcs: map[string]*starlark.Builtin{

			"add_signature": starlark.NewBuiltin("add_signature", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var addr Relocatable
				var sig starlark.Tuple
				if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "signature", &sig); err != nil {
					return nil, err
				}
				if len(sig) != 2 {
					return nil, fmt.Errorf("%s: signature must be (r, s)", fn.Name())
				}
				var parts [2]*big.Int
				for i, v := range sig {
					n, ok := v.(starlark.Int)
					if !ok {
						return nil, fmt.Errorf("%s: signature part must be int, got %s", fn.Name(), v.Type())
					}
					parts[i] = n.BigInt()
				}
				if err := proxy.Add(addr.Address, parts[0], parts[1]); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		},
	}
}

func scopeFuncs(proxy bridges.ScopeProxy) starlark.StringDict {
	return starlark.StringDict{

		"vm_enter_scope": starlark.NewBuiltin("vm_enter_scope", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var dict *starlark.Dict
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "new_scope_locals?", &dict); err != nil {
				return nil, err
			}
			bindings := make(map[string]any)
			if dict != nil {
				for _, item := range dict.Items() {
					key, ok := item[0].(starlark.String)
					if !ok {
						return nil, fmt.Errorf("%s: scope keys must be strings", fn.Name())
					}
					bindings[string(key)] = FromStarlark(item[1])
				}
			}
			if err := proxy.Enter(bindings); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}),

		"vm_exit_scope": starlark.NewBuiltin("vm_exit_scope", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
				return nil, err
			}
			if err := proxy.Exit(); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}),
	}
}

// proxies builds the globals every hint sees.
func proxies(env bridges.Env) starlark.StringDict {
	ret := starlark.StringDict{
		"memory": memoryValue{
			proxyValue: proxyValue{name: "memory"},
			proxy:      env.Memory,
		},
		"ids": idsValue{
			proxyValue: proxyValue{name: "ids"},
			proxy:      env.IDs,
		},
		"segments":      segmentsModule(env.Segments),
		"ecdsa_builtin": signaturesModule(env.Signatures),
		"ap":            Relocatable{Address: env.AP},
		"fp":            Relocatable{Address: env.FP},
		"relocatable":   starlark.NewBuiltin("relocatable", makeRelocatable),
	}
	for name, fn := range scopeFuncs(env.Scope) {
		ret[name] = fn
	}
	return ret
}
