package main

import (
	"github.com/sandeepkv93/trackd/internal/cli"
)

func main() {
	cli.Execute()
}
