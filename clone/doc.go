// Package clone deep-copies value graphs of the object model.
//
// A clone is structurally and referentially faithful to its source:
//   - every composite reachable more than once is copied once, so diamonds
//     stay diamonds and cycles close on the copy itself
//   - every composite keeps its category and its template link; templates,
//     functions and symbols are shared, never copied
//   - property descriptors are reproduced exactly, accessors included (their
//     functions are shared and never invoked while copying)
//   - a composite, or any object on its template chain, may bind a function
//     under the Custom symbol; that function then produces the clone
//
// Copying is a synchronous depth-first recursion. Its depth follows the depth
// of the source graph, so a pathologically deep acyclic graph can exhaust the
// goroutine stack; WithMaxDepth turns that into an ErrTooDeep failure.
//
// Weak containers and host values that are not composites are shared by
// reference. This is a documented caveat, not an error.
package clone
