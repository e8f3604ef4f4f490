/*
Package turing simulates single-tape deterministic Turing machines.

A machine is described in a small text format and run against input strings. The run
halts as soon as no transition matches the current state and the symbol under the head;
the input is accepted when the machine halts in one of its accepting states.

# Description Format

Five newline-separated sections:

	t e s n i c    alphabet (may be empty)
	_              blank symbol
	0              accepting states (may be empty)
	1              initial state
	1 t 2 n R      transitions: state symbol next-state write-symbol direction (L or R, only the first letter counts)

Among the transitions, lines starting with '#' are comments; the header
sections are positional, so '#' may be a symbol there. Descriptions may also be written in YAML
(domain.FormatYAML) with the keys alphabet, blank, accepting, initial and transitions.

# Usage

	eng, err := turing.Compile(&ports.Description{Name: "swap", Format: domain.FormatText, Data: data},
		turing.WithLogger(logger),
	)
	// or: turing.Load(ctx, file.New("machines"), "swap")

	res, err := eng.RunString("test")
	if err != nil {
		// input symbol outside the machine's alphabet
	}
	fmt.Println(res.Accepted, res.Tape)

There is no step limit: a machine that never reaches a missing transition runs forever,
exactly like its mathematical model.
*/
package turing
