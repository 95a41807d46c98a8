package main

import (
	"github.com/mcoot/rpsduel-go/internal/cli"
)

func main() {
	cli.Execute()
}
