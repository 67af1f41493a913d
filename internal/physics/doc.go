// Package physics implements the particle sandbox world.
//
// The package defines the owning container and its entities:
//
//   - [World]: particle and stick collections, gravity, bounds, unit scale,
//     and the monotonic id counter
//   - [Particle]: point mass carrying both kinematic representations
//     (explicit velocity, and previous position + accumulated force)
//   - [Stick]: distance relationship between two particle ids
//   - [Integrator]: per-particle stepping strategy chosen at construction
//
// The integrators package provides the two stepping modes. Stick
// enforcement is a single positional-correction pass per step, enabled
// with [World.SetStickSolver]; dangling stick endpoints are skipped
// everywhere, never an error.
//
// # Identity
//
// Ids come from [World.AllocateID] and are never reused; [World.Clear]
// empties the collections but keeps the counter, so a stale stick can
// never silently resolve to a newly spawned particle. The particle slice
// stays in ascending id order (inserts are ordered), which is what makes
// the binary-search lookup in [World.FindParticle] valid.
//
// # Thread Safety
//
// World instances are NOT thread-safe. Concurrent callers must hold one
// lock around the whole World; the sandbox package's Session provides
// that boundary.
package physics
