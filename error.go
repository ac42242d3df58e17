package pseudolru

import "fmt"

type constError string

// ErrInvalidCapacity may be returned from [New].
const ErrInvalidCapacity = constError("invalid capacity")

func (errStr constError) Error() string { return string(errStr) }

// minCapacityError reports the exact floor, which moves with the
// configured sample size.
func minCapacityError(capacity, floor int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, floor, capacity)
}
