package main

import "fmt"

func errAlreadyExists(path string) error {
	return fmt.Errorf("%s already exists (use --force to overwrite)", path)
}
