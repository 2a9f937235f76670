package main

import (
	"github.com/anchore/check-pyproject/cmd"
)

func main() {
	cmd.Execute()
}
