/*
Package intercept redirects component network traffic to static fixtures
for the duration of a preview session.

The ambient fetch client is process-wide: anything issued through it
between Install and Uninstall is answered by the route table, never the
network. Routes are matched in order, exact or by prefix, and anything
unmatched resolves to a synthetic 404 so previewed components exercise
their own missing-data handling. Responses are pure functions of the
fixture store; the same request always gets the same reply.

Install while installed is a deterministic error, Uninstall when nothing
is installed is a no-op, and Uninstall restores the exact transport saved
at install time.
*/
package intercept
