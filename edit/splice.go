package edit

import (
	"github.com/viant/spritesync/graph"
)

// splice replaces one span with text, leaving every other byte untouched.
func splice(src []byte, span graph.Location, text string) []byte {
	result := make([]byte, 0, len(src)-span.Len()+len(text))
	result = append(result, src[:span.Start]...)
	result = append(result, text...)
	result = append(result, src[span.End:]...)
	return result
}

// cut removes the half-open byte range [start, end).
func cut(src []byte, start, end int) []byte {
	result := make([]byte, 0, len(src)-(end-start))
	result = append(result, src[:start]...)
	result = append(result, src[end:]...)
	return result
}

// insertElement appends text as the last element of a delimited sequence -
// a call argument list or a list literal, both spanned including their
// delimiters. The new element lands immediately after the last existing
// element, whose span the caller takes from the parse tree, so trailing
// commas and comments before the closing delimiter stay where they are. A
// nil last means the sequence is empty and the element goes right after the
// opening delimiter.
func insertElement(src []byte, span graph.Location, last *graph.Location, text string) []byte {
	insertAt := span.Start + 1
	separator := ""
	if last != nil {
		insertAt = last.End
		separator = ", "
	}
	result := make([]byte, 0, len(src)+len(separator)+len(text))
	result = append(result, src[:insertAt]...)
	result = append(result, separator...)
	result = append(result, text...)
	result = append(result, src[insertAt:]...)
	return result
}

// removeArgument cuts a keyword argument out of a call's argument list along
// with its separating comma: the preceding one when the argument is not
// first, otherwise the following one.
func removeArgument(src []byte, arguments, span graph.Location) []byte {
	start, end := span.Start, span.End
	before := start - 1
	for before > arguments.Start && isSpace(src[before]) {
		before--
	}
	if src[before] == ',' {
		return cut(src, before, end)
	}
	after := end
	for after < arguments.End-1 && isSpace(src[after]) {
		after++
	}
	if after < arguments.End-1 && src[after] == ',' {
		after++
		for after < arguments.End-1 && isSpace(src[after]) {
			after++
		}
		return cut(src, start, after)
	}
	return cut(src, start, end)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
