//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the shelter project using Mage.
//
// Usage:
//
//	mage build       Compile the shelter binary to bin/
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage test:cover  Run all tests and write coverage.out
//	mage lint        Run go vet and golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install shelter to GOPATH/bin
package main

// Default target run when mage is invoked without arguments.
var Default = Build
