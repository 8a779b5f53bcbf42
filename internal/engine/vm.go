package engine

import "regexp"

func compileVM(expr string) (finder, error) {
	return regexp.Compile(expr)
}
