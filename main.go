package main

import "freelancer-analyzer/cli"

func main() {
	cli.Execute()
}
