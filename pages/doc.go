// Package pages defines page identity and the project-facing page types
// shared by every pipeline stage.
//
// An [ID] is the durable key a stage files its per-page parameters under.
// It is comparable and hashable, survives project reloads, and changes
// only through explicit relinking (see [Relinker]). Stages receive pages
// as [Info] values in an ordered [Sequence] produced by the hosting
// project.
package pages
