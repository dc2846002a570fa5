// Package object implements a small dynamic, prototype-based object model.
//
// Values are plain Go values (any). The model recognizes:
//   - primitives: float64 (and the other Go numeric kinds), string, bool,
//     *big.Int, *Symbol, Undefined, Null and Go nil
//   - opaque executables: *Function
//   - composites: every type implementing Composite, that is *Object and the
//     built-in categories embedding it (*Array, *Map, *Set, *Boxed,
//     *ArrayBuffer, *TypedArray, *DataView, *RegExp, *Date, *Error and the
//     weak containers)
//
// Every composite owns an ordered table of property descriptors keyed by
// PropertyKey (a string or a *Symbol) and a link to a shared template
// object (its prototype). Property reads that miss walk the template chain.
//
// A Realm bundles one template per built-in category so that values built
// through it share their templates the way values of one runtime do.
package object
