package main

import "workload-manifests/internal/cli"

func main() {
	cli.Execute()
}
