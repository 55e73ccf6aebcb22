package main

import (
	"go-currency-bank/cli"
	"os"
)

func main() {
	os.Exit(cli.Execute())
}
