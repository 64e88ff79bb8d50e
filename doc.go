// Package g2p implements a grapheme-to-phoneme transduction engine:
// context-sensitive rewrite rules are compiled into matchers, applied
// left to right over an input string, and threaded through a directed
// graph of named inventories so that a full character-level alignment
// survives from the original input to the final output, across one or
// many chained conversion steps.
package g2p
