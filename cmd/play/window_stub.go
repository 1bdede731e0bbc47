//go:build !cgo

package main

import "errors"

func runWindow(s *session, scale int) error {
	return errors.New("window mode needs a cgo build; try -mode term")
}
