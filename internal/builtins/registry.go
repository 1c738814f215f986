package builtins

import "github.com/osyris-lang/osyris/internal/object"

// Builtins collects every native operator wired into the root scope,
// in the teacher's registry-of-structs shape: a name paired with the
// implementation, rather than a map, so iteration order matches
// declaration order for diagnostics and documentation generation.
var Builtins = []struct {
	Name string
	Fn   object.NativeFunc
}{
	{"+", add},
	{"-", sub},
	{"*", mul},
	{"/", div},
	{"mod", mod},
	{"not", not},
	{"==", eq},
	{"!=", neq},
	{"<=", lte},
	{"<", lt},
	{">=", gte},
	{">", gt},
	{"||", or},
	{"&&", and},
	{"??", coalesce},

	{"def", def},
	{"set", set},
	{"func", fn},
	{"mutate", mutate},
	{"bind", bind},
	{"with", with},

	{"if", ifBuiltin},
	{"match", match},
	{"while", whileBuiltin},
	{"do", doBuiltin},
	{"try", tryBuiltin},
	{"lazy", lazyBuiltin},
	{"error", errorBuiltin},

	{"string", stringBuiltin},
	{"lambda", lambdaBuiltin},

	{"list", list},
	{"list-push", listPush},
	{"list-pop", listPop},
	{"list-last", listLast},
	{"list-insert", listInsert},
	{"list-remove", listRemove},
	{"list-map", listMap},
	{"list-for", listFor},
	{"list-len", listLen},
	{"dict", dict},
	{"dict-set", dictSet},
	{"dict-mutate", dictMutate},

	{"read", read},
	{"write", write},
	{"seek", seek},
	{"open", open},
	{"create", create},

	{"print-scope-dot", printScopeDot},
}

// GetByName retrieves a builtin's implementation by name, or nil if
// no builtin has that name.
func GetByName(name string) object.NativeFunc {
	for _, def := range Builtins {
		if def.Name == name {
			return def.Fn
		}
	}
	return nil
}
