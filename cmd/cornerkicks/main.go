package main

import "github.com/dlehdeod1/newcornerkicks/internal/cli"

func main() {
	cli.Execute()
}
