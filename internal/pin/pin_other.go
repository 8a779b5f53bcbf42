//go:build !linux

package pin

func pinCPU(int) (func(), error) {
	return nil, ErrUnsupported
}
