package config

import (
	"fmt"
	"strconv"
)

// Uint32Flag is a flag.Value that rejects values outside the uint32 range
// instead of truncating them.
type Uint32Flag uint32

func (f *Uint32Flag) String() string {
	if f == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*f), 10)
}

func (f *Uint32Flag) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("must be an integer in [0, %d]", uint32(1<<32-1))
	}
	*f = Uint32Flag(n)
	return nil
}

// Get returns the value as a uint32.
func (f *Uint32Flag) Get() any {
	return uint32(*f)
}
