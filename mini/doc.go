// Package mini implements a tree-walking interpreter for a small imperative
// language with three scalar types. Programs are made of:
//   - Typed declarations `int x = 1 + 2;`, `string s = "a" + t;`, `bool b = x < 3;`.
//   - Bare assignments `x = x + 1;` to an integer or string variable.
//   - `print(...)` and `println(...)`, which concatenate their operands.
//   - `if (cond) { ... } else { ... }` and `while (cond) { ... }`.
//   - `input_`, which reads one line from the configured LineSource.
//
// Integers are 32-bit and wrap on overflow. Variables live in one flat
// environment with separate integer, string and boolean namespaces.
package mini
