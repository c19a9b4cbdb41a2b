package main

import "github.com/zumikiti/claude-code-work-analysis/cmd"

func main() {
	cmd.Execute()
}
