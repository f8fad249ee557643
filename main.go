package main

import "github.com/astro-friedel/mirgecom/cmd"

func main() {
	cmd.Execute()
}
