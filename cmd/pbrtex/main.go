package main

import "github.com/MeKo-Tech/pbrtex/internal/cmd"

func main() {
	cmd.Execute()
}
