// Package configure translates configure-style command line options into a
// CMake cache invocation. It keeps an ordered, append-only list of cache
// entries, seeds the documented defaults, prepares the build directory and
// finally delegates to the cmake binary.
package configure
