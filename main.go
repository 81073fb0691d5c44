// Package main GateScan scan orchestration service
//
// GateScan keeps a set of Git repositories synchronized to local disk,
// runs the SonarQube scanner against every configured branch and serves
// a quality-gate badge dashboard.
package main

import "github.com/gatescan/gatescan/internal"

func main() {
	internal.Run()
}
