package measure

// exposeTypeImports returns source with the "type" modifier of type-only
// import and re-export declarations overwritten by spaces, so esbuild parses
// them as value imports and records their specifiers. Offsets are unchanged.
// ok is false when source has no such declaration.
//
// Recognized forms:
//
//	import type X from "m"          import type { X } from "m"
//	import type * as X from "m"     import type X = require("m")
//	export type { X } from "m"      export type * from "m"
//
// "import type from 'm'" and "import type, { x } from 'm'" bind a value
// named type and are left alone, as is "export type { X }" without a source.
func exposeTypeImports(source string) (string, bool) {
	var marks []int
	var prev byte
	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '/' && i+1 < len(source) && (source[i+1] == '/' || source[i+1] == '*'):
			i = skipComment(source, i)
		case c == '\'' || c == '"':
			i = skipString(source, i)
			prev = c
		case c == '`':
			i = skipTemplate(source, i)
			prev = c
		case isIdentStart(c):
			end := identEnd(source, i)
			if word := source[i:end]; prev != '.' && (word == "import" || word == "export") {
				if at := typeModifier(source, end, word == "export"); at >= 0 {
					marks = append(marks, at)
				}
			}
			prev = source[end-1]
			i = end
		default:
			if !isSpace(c) {
				prev = c
			}
			i++
		}
	}
	if len(marks) == 0 {
		return source, false
	}

	out := []byte(source)
	for _, at := range marks {
		copy(out[at:at+len("type")], "    ")
	}
	return string(out), true
}

// typeModifier returns the offset of a type-only "type" keyword following an
// import or export keyword that ends at pos, or -1.
func typeModifier(src string, pos int, export bool) int {
	at := skipTrivia(src, pos)
	if !hasWord(src, at, "type") {
		return -1
	}
	next := skipTrivia(src, at+len("type"))
	if next >= len(src) {
		return -1
	}

	switch c := src[next]; {
	case c == '*':
		return at
	case c == '{':
		if !export {
			return at
		}
		end := indexByteFrom(src, next, '}')
		if end < 0 || !hasWord(src, skipTrivia(src, end+1), "from") {
			return -1
		}
		return at
	case !export && isIdentStart(c):
		end := identEnd(src, next)
		if src[next:end] == "from" {
			if q := skipTrivia(src, end); q < len(src) && (src[q] == '\'' || src[q] == '"') {
				return -1
			}
		}
		return at
	}
	return -1
}

func skipTrivia(src string, i int) int {
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipComment(src, i)
		default:
			return i
		}
	}
	return i
}

func skipComment(src string, i int) int {
	if src[i+1] == '/' {
		if end := indexByteFrom(src, i, '\n'); end >= 0 {
			return end + 1
		}
		return len(src)
	}
	for j := i + 2; j+1 < len(src); j++ {
		if src[j] == '*' && src[j+1] == '/' {
			return j + 2
		}
	}
	return len(src)
}

// skipString stops at the closing quote or the end of the line, whichever
// comes first, so an unbalanced quote cannot hide the rest of the file.
func skipString(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(src)
}

func skipTemplate(src string, i int) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '`':
			return j + 1
		}
	}
	return len(src)
}

func hasWord(src string, i int, word string) bool {
	end := i + len(word)
	if end > len(src) || src[i:end] != word {
		return false
	}
	return end == len(src) || !isIdentPart(src[end])
}

func identEnd(src string, i int) int {
	for i < len(src) && isIdentPart(src[i]) {
		i++
	}
	return i
}

func indexByteFrom(src string, i int, b byte) int {
	for ; i < len(src); i++ {
		if src[i] == b {
			return i
		}
	}
	return -1
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
