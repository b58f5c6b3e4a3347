package main

import (
	"github.com/whoamihappyhacking/vidscribe/cmd"
)

func main() {
	cmd.Execute()
}
