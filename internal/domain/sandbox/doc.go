/*
Package sandbox compiles rewritten component source into invocable
programs and executes them in an isolated JavaScript runtime.

# Overview

Each compilation gets a fresh goja VM. The rewritten text is evaluated as
a function of exactly four bindings:

 1. h: the element-construction primitive
 2. useState: per-invocation state slots
 3. useEffect: effects run after each render pass
 4. __mocks__: the substitute table for stripped imports

Nothing else is in scope. Node-style globals are removed, timers are
inert, and console output is captured instead of printed. The only
ambient capability is fetch, which routes through the interception
layer's client on purpose: global redirection of component traffic is the
point of a preview session.

# Execution model

Invocation is synchronous. The view renders, queued effects run, and if
an effect changed state the view renders again, bounded by
Config.MaxPasses. The settled return value is exported as a plain Go
value and decoded into an element tree by the caller.

# Failure modes

Compilation errors, runtime exceptions, and effect failures return as
errors; the sandbox performs no recovery. The fault isolation boundary
above it converts them into diagnostic views. A hung script is stopped
through the VM interrupt after Config.Timeout.
*/
package sandbox
