// SPDX-License-Identifier: Unlicense OR MIT

// Package cliargs scans X11-style "-flag value" pairs out of an argument
// list without claiming the rest of it, the way backends pick their own
// options from a shared command line.
package cliargs

import "strings"

// Lookup returns the value of the first occurrence of any of names in
// args. The token after the flag is the value; "-flag=value" is accepted
// too. A flag in last position has no value and is not reported.
func Lookup(args []string, names ...string) (string, bool) {
	for i, a := range args {
		for _, n := range names {
			if a == n {
				if i+1 < len(args) {
					return args[i+1], true
				}
				return "", false
			}
			if strings.HasPrefix(a, n+"=") {
				return a[len(n)+1:], true
			}
		}
	}
	return "", false
}
