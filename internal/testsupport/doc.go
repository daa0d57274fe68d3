// Package testsupport holds helpers shared by cinedex tests: temp-dir backed
// configs and store fixtures.
package testsupport
