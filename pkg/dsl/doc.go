/*
Package dsl provides a Go DSL for programmatically constructing Turing machines.

It allows developers to define machines with a fluent builder instead of writing a
description file. This is particularly useful for generated machines and unit tests.

Example usage:

	b := dsl.New("swap").Alphabet("tesnic").Blank('_')

	b.Add(1).Initial().
		Right('t', 'n', 2).
		Right('n', 't', 5)

	b.Add(0).Accepting().
		Left('c', 'c', 0)

	def, err := b.Build()
	// ... pass def to turing.New(...)
*/
package dsl
