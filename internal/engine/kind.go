package engine

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Kind selects a matching backend.
type Kind int

// Backend kinds. The zero value is invalid.
const (
	// PikeVM is the interpreted matcher from the Go standard library.
	PikeVM Kind = iota + 1
	// PikeJIT is RE2 compiled to WebAssembly and run through wazero's compiler.
	PikeJIT
)

const re2Module = "github.com/wasilibs/go-re2"

var kindNames = map[Kind]string{
	PikeVM:  "pike_vm",
	PikeJIT: "pike_jit",
}

// Kinds returns all backend kinds in a stable order.
func Kinds() []Kind {
	return []Kind{PikeVM, PikeJIT}
}

// ParseKind parses an engine name as given on the command line.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w '%s'", ErrUnknownEngine, name)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Version reports the version of the library backing this engine.
func (k Kind) Version() string {
	switch k {
	case PikeVM:
		return runtime.Version()
	case PikeJIT:
		return moduleVersion(re2Module)
	}

	panic(fmt.Sprintf("engine: invalid kind %d", int(k)))
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}

		if dep.Replace != nil {
			return dep.Replace.Version
		}

		return dep.Version
	}

	return "unknown"
}
