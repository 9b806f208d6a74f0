package main

import "github.com/sovchain/mint-verifier/cmd"

func main() {
	cmd.Execute()
}
