/*
Package gatesim provides the simulation core of an interactive logic circuit
editor: an id-keyed arena of logic elements, a single pass propagation engine
and the state machine that turns user gestures into wiring changes.

The package does not draw anything. A host UI feeds gestures into a Session as
Events, calls Session.Frame once per redraw and reads element state back through
the query methods to render it.

Evaluation is clocked, not combinational: each call to Engine.Step moves every
signal through exactly one gate. A gate whose output feeds back into its own
input sees that feedback one step later. FeedbackLoops reports where this
happens in a circuit.

*/
package gatesim
