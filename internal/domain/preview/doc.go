/*
Package preview orchestrates component preview sessions.

The Controller owns the session lifecycle: it installs network
interception before any compilation runs, removes it exactly once when a
session ends or is replaced, and discards results of superseded
selections. The Boundary wraps the transform/compile/invoke pipeline so
that every failure, whatever its stage, surfaces as a readable diagnostic
element instead of reaching the host page.

Session states:

	idle -> loading -> transformed -> compiled -> rendered
	                \______________ errored _____________/

At most one session is active at a time; the ambient fetch client is
only ever rewired under the controller's lock.
*/
package preview
