// Package graphyaml builds object graphs from YAML documents.
//
// Mappings become plain objects and sequences become arrays. An alias refers
// to the very composite built for its anchor, so anchors describe shared and
// circular references. Local tags select the other categories:
//
//	!map        mapping whose keys are values, not property names
//	!set        sequence of unique elements
//	!box        boxed primitive
//	!bigint     arbitrary precision integer
//	!symbol     atom; equal descriptions in one document are the same atom
//	!regexp     "/source/flags"
//	!date       epoch milliseconds or an RFC 3339 instant
//	!error      "TypeError: message" or {kind, message, stack, cause}
//	!buffer     base64 text or a sequence of bytes
//	!typedarray {kind, buffer, offset, length}
//	!dataview   {buffer, offset, length}
//	!hole       array slot without an element
//	!frozen, !sealed, !fixed
//	            restrict a mapping or sequence after it is built
package graphyaml
