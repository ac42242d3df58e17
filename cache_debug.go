//go:build pseudolru_debug

package pseudolru

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
