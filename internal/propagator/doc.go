// Package propagator computes the blast radius of a change: given a fact that
// just changed, it returns every fact that transitively depends on it.
//
// The traversal is a level-synchronous breadth-first search. Each frontier is
// expanded in full before the next one starts; members of a wide frontier are
// expanded concurrently by a bounded pool of workers, and a mutex-guarded
// invalidated set is the only point where those workers meet. A candidate
// joins the next frontier only if it wins the insert into that set, so no fact
// is expanded twice and cycles terminate.
package propagator
