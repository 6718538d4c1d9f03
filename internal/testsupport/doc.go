// Package testsupport builds the synthetic game installs, decompiler output
// trees, and configurations that pipeline tests run against.
package testsupport
