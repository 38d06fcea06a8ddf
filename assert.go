package ovector

import "fmt"

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("ovector: "+format, args...))
	}
}
