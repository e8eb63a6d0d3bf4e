package evaluator

import (
	"regexp"
	"strings"
)

// compileRegex translates the supported subset of the flag set to Go's
// RE2 inline-flag syntax and compiles the pattern. `g`, `u`, and `y` are
// recorded on the resulting value (Flags) but do not change compilation:
// RE2 has no sticky or dedicated unicode mode to map them onto. Documented
// as an open-question resolution.
func compileRegex(pattern, flags string) (*RegExpValue, error) {
	var inline strings.Builder
	if strings.ContainsRune(flags, 'i') {
		inline.WriteByte('i')
	}
	if strings.ContainsRune(flags, 'm') {
		inline.WriteByte('m')
	}
	if strings.ContainsRune(flags, 's') {
		inline.WriteByte('s')
	}
	src := pattern
	if inline.Len() > 0 {
		src = "(?" + inline.String() + ")" + pattern
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	return &RegExpValue{Pattern: pattern, Flags: flags, Compiled: re}, nil
}
