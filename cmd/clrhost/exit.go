package main

import "fmt"

// exitError carries a non-zero exit code of the managed program.
type exitError int

func (e exitError) Error() string {
	return fmt.Sprintf("non-zero exit code: %d", int(e))
}

func (exitError) Is(other error) bool {
	_, ok := other.(exitError)
	return ok
}

// Code returns the exit code as basic int type.
func (e exitError) Code() int {
	return int(e)
}
