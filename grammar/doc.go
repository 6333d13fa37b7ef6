// Package grammar tokenizes GNU-style date expressions and recognizes them
// as a list of typed fragments.
//
// Recognition is a fixed priority list of pure matchers, one per flavour
// (epoch, date+time, date, time, zone, weekday, relative, keyword, number).
// The first matcher that accepts the tokens at the current position wins.
// Fragments carry no ordering semantics; package resolve merges them.
package grammar
