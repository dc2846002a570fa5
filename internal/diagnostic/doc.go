// Package diagnostic provides structured errors, warnings and infos about a
// cloned value graph.
//
// Each diagnostic carries a stable code, a message, the kind of the value it
// concerns and a path from the graph root such as $.items[2].[Symbol(tag)].
package diagnostic
