// Package asyncseq implements lazy, pull-based asynchronous sequences.
//
// Since Go has no native async-iterator or generator facility, this library
// builds one from two small pieces: a suspending computation, which is just
// a function of a [context.Context] that blocks between steps, and
// a recursive sum type, [Seq], describing "one element plus the rest".
// Everything else, the structured control flow and the whole combinator
// vocabulary, is composed from these two pieces.
//
// # Sequences Are Recipes
//
// A [Seq] is a recipe, not a collection.
// Driving a sequence one step may perform side effects: open a file, wait
// for a message, query a server.
// Driving the same sequence value twice re-executes those effects.
// Nothing is memoized implicitly; a consumer that needs replay must say so
// with [Cache].
//
// # Structured Construction
//
// The equivalent of a generator function body is written by composing
// builder operations:
//
//   - [Singleton] and [Append] for yielding elements in sequence;
//   - [OfSlice] and [OfSeq] for iterating an already-available collection;
//   - [Collect] for iterating another asynchronous sequence;
//   - [Bind] for suspending on an intermediate computation before
//     continuing, the primary suspension point of the whole system;
//   - [TryWith], [TryFinally] and [Using] for failure interception,
//     guaranteed compensation and scoped resources.
//
// # Failure Propagation
//
// A failure raised while driving any node propagates synchronously to
// whichever consumer is currently driving the sequence.
// Nothing is retried.
// A panic in producer code crossing a [TryWith] or [TryFinally] boundary is
// captured as a [*PanicError] so that compensation still runs and handlers
// can observe it like any other failure.
//
// # Bridging Push Sources
//
// The observe subpackage turns push-based event sources into one-shot
// suspending reads, which compose with [Bind] to consume callback-style
// notification sources as ordinary sequences.
// The dispatch subpackage pins resumption of those reads to an execution
// context.
package asyncseq
