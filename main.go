package main

import (
	"github.com/clearday/clearday/cmd"
)

func main() {
	cmd.Execute()
}
