package vec

import (
	"github.com/fagongzi/util/hack"
)

// AppendSlice appends values in order, growing as needed. On error the
// values up to the failing one remain appended.
func AppendSlice[T any](v *Vector[T], values ...T) error {
	for _, value := range values {
		if _, err := v.Append(value); err != nil {
			return err
		}
	}
	return nil
}

// AppendString appends the bytes of s to a byte vector. The string is not
// copied before appending.
func AppendString(v *Vector[byte], s string) error {
	return AppendSlice(v, hack.StringToSlice(s)...)
}
