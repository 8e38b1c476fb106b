package postprocess

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// mangledSymbol matches tokens that may be Itanium C++ (`_Z`), legacy Rust (`_ZN...E`) or
// Rust v0 (`_R`) mangled names, with the extra leading underscore used on Mach-O.
var mangledSymbol = regexp.MustCompile(`_?_[ZR][_0-9A-Za-z$.]+`)

func isSymbolByte(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		'0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// Demangle replaces every mangled symbol name in stdout with its demangled form.
// Tokens that start in the middle of an identifier or that fail to demangle are kept
// byte for byte, as is all the text around them.
func Demangle(stdout []byte) []byte {
	locs := mangledSymbol.FindAllIndex(stdout, -1)
	if len(locs) == 0 {
		return stdout
	}

	var out bytes.Buffer
	last := 0

	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 && isSymbolByte(stdout[start-1]) {
			continue
		}

		name, ok := demangleSymbol(string(stdout[start:end]))
		if !ok {
			continue
		}

		out.Write(stdout[last:start])
		out.WriteString(name)
		last = end
	}

	if last == 0 {
		return stdout
	}

	out.Write(stdout[last:])

	return out.Bytes()
}

func demangleSymbol(sym string) (string, bool) {
	if name, err := demangle.ToString(sym); err == nil {
		return name, true
	}

	if strings.HasPrefix(sym, "__") {
		if name, err := demangle.ToString(sym[1:]); err == nil {
			return name, true
		}
	}

	return "", false
}
