package cpp

import "sort"

// Fragment is one member or function with its declaration and definition.
type Fragment struct {
	Header string
	Source string
}

// Blocks collects the pieces each feature generator contributes to an
// object. Header and source files are assembled from the merged blocks.
type Blocks struct {
	includes map[string]struct{}

	// Preamble goes in the object namespace right after the class forward
	// declaration.
	Preamble []string
	// ForwardDeclares go in the internal namespace ahead of the class.
	ForwardDeclares []string
	// Declarations are the host entry points and helper types the class
	// body and source file refer to.
	Declarations []string
	BaseClasses  []string
	// Initializers follow the host type in every constructor's
	// member initializer list.
	Initializers []string
	// Metaobjects are macros placed at the top of the class body.
	Metaobjects []string
	// Enums are defined at the top of the public section.
	Enums          []string
	Methods        []Fragment
	PrivateMethods []Fragment
	// Constructors are rendered after methods; the routed constructors are
	// private.
	Constructors        []Fragment
	PrivateConstructors []Fragment
	// Runtime holds source-only specialisations inside the runtime
	// namespace.
	Runtime []string
	// Free holds source-only functions in the internal namespace.
	Free []string
	// Destructor statements run before host state is released.
	Destructor []string
	// Functions are free functions of the object namespace declared after
	// the class.
	Functions []Fragment
}

func (b *Blocks) Include(headers ...string) {
	if b.includes == nil {
		b.includes = make(map[string]struct{})
	}
	for _, h := range headers {
		b.includes[h] = struct{}{}
	}
}

// Includes returns the include set sorted, angle-bracket system headers
// first.
func (b *Blocks) Includes() []string {
	out := make([]string, 0, len(b.includes))
	for h := range b.includes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i][0] == '<', out[j][0] == '<'
		if si != sj {
			return si
		}
		return out[i] < out[j]
	})
	return out
}

// Append merges other into b, keeping order.
func (b *Blocks) Append(other *Blocks) {
	for h := range other.includes {
		b.Include(h)
	}
	b.Preamble = append(b.Preamble, other.Preamble...)
	b.ForwardDeclares = append(b.ForwardDeclares, other.ForwardDeclares...)
	b.Declarations = append(b.Declarations, other.Declarations...)
	b.BaseClasses = append(b.BaseClasses, other.BaseClasses...)
	b.Initializers = append(b.Initializers, other.Initializers...)
	b.Metaobjects = append(b.Metaobjects, other.Metaobjects...)
	b.Enums = append(b.Enums, other.Enums...)
	b.Methods = append(b.Methods, other.Methods...)
	b.PrivateMethods = append(b.PrivateMethods, other.PrivateMethods...)
	b.Constructors = append(b.Constructors, other.Constructors...)
	b.PrivateConstructors = append(b.PrivateConstructors, other.PrivateConstructors...)
	b.Runtime = append(b.Runtime, other.Runtime...)
	b.Free = append(b.Free, other.Free...)
	b.Destructor = append(b.Destructor, other.Destructor...)
	b.Functions = append(b.Functions, other.Functions...)
}
