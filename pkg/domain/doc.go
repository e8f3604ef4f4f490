/*
Package domain contains the core domain models of the Turing machine simulator.

It defines the vocabulary shared by the engine, the description compiler and the adapters:
symbols, states, head directions, transition rules, the immutable machine Definition and the
Result of a run. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol: A single tape cell value. One symbol of each Definition is the blank.
  - State: A non-negative integer identifying a control configuration.
  - Transition: A rule (state, read) -> (next state, write, direction).
  - Definition: Alphabet, blank, accepting states, initial state and transition rules.
  - Result: The outcome of a run (acceptance, halting state, touched tape span).
*/
package domain
