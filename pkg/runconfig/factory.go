// SPDX-License-Identifier: MPL-2.0

package runconfig

type (
	// Factory creates fresh configurations of a single type.
	Factory interface {
		Type() TypeID
		Create(name string) Configuration
	}

	factoryFunc struct {
		typ    TypeID
		create func(name string) Configuration
	}
)

// NewFactory adapts a constructor function into a Factory.
func NewFactory(typ TypeID, create func(name string) Configuration) Factory {
	return &factoryFunc{typ: typ, create: create}
}

func (f *factoryFunc) Type() TypeID { return f.typ }

func (f *factoryFunc) Create(name string) Configuration { return f.create(name) }

// BuiltinFactories returns one factory per builtin variant, in TypeID order.
func BuiltinFactories() []Factory {
	return []Factory{
		NewFactory(TypeApplication, func(name string) Configuration { return NewApplicationConfiguration(name) }),
		NewFactory(TypeScript, func(name string) Configuration { return NewScriptConfiguration(name) }),
		NewFactory(TypeCompound, func(name string) Configuration { return NewCompoundConfiguration(name) }),
	}
}
