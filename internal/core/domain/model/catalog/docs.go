// Package catalog models the products orders are priced from.
//
// The catalog itself is maintained elsewhere; this package owns only the
// invariant that matters to ordering: available quantity never drops below
// zero and changes only through Reserve and Release.
package catalog
