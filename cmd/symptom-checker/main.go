package main

import "github.com/yourusername/symptom-checker/internal/cli"

func main() {
	cli.Run()
}
