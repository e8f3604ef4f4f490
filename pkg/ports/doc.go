/*
Package ports defines the driven ports (interfaces) of the simulator.

These interfaces decouple the engine and its command line from the places machine
descriptions live, so the same machine can be read from a directory, a Markdown library,
Redis or memory.

# Key Interfaces

  - DefinitionLoader: Retrieves raw machine descriptions by name.
  - DefinitionStore: A DefinitionLoader that can also publish and remove descriptions.
*/
package ports
