package main

import (
	"github.com/gostones/resumeupload/internal/cli"
)

func main() {
	cli.Main()
}
