// Copyright 2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package funcopt derives command-line interfaces from parameter lists.
//
// A target declares its parameters once: parameters without a default are required positional arguments, parameters
// with a default become options whose kind follows the default (bool gives a flag, a slice an accumulating option,
// anything else an option taking one value). funcopt assigns short flags, infers value coercions, validates values,
// renders help and invokes the target:
//
//	add := funcopt.NewFunction("add", func(a *funcopt.Args) (any, error) {
//		return a.GetInt("a") + a.GetInt("b"), nil
//	}, funcopt.ArgOf("a", 0), funcopt.Opt("b", 2))
//
//	result, err := runner.Run(add, []string{"1", "-b", "3"})
//
// Several targets can be run as subcommands with Runner.RunMany, which adds a help command and a command listing.
// Struct values are run as constructors and types implementing Caller as call operators.
package funcopt
