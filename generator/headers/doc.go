// Package headers embeds the C++ runtime generated code includes: guarded
// pointers and thread handles, the recursive lock and its scoped guard,
// signal handler boxes, the host type holder, conversions, connection
// guards and numeric meta type aliases.
//
// Write copies them under a directory so that <qtbind/thread.h> and the
// others resolve when that directory is on the include path.
package headers
