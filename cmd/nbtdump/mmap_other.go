//go:build !unix

package main

import "os"

// mapFile falls back to reading the whole file on platforms without a
// usable mmap.
func mapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
