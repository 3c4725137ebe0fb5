// Package regexlib compiles a small regular expression language into a
// minimal deterministic finite automaton.
//
// The pipeline has five stages, each finishing before the next starts:
//
//   - Tokenize: pattern text to tokens, '\' escapes the next character.
//   - Parse: recursive descent over the tokens into an AST.
//   - BuildNFA: Thompson construction, one fragment per AST node.
//   - BuildDFA: subset construction over an explicit alphabet.
//   - Minimize: Moore partition refinement.
//
// Supported syntax is | * + ? ( ) [ ] - and '.', nothing else. There are no
// anchors, counted repetition or back-references.
//
// Usage:
//
//	c, err := regexlib.Compile("ab*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c.Minimal.NumStates())
package regexlib
