// Package source discovers importable items across the corpus backends.
//
// Two backends exist: a local filesystem tree and an object-storage
// bucket prefix. Both are unified behind the Descriptor shape (canonical
// path identity, topic, format hint, lazy byte loader) so the
// synchronizer stays backend-agnostic; each backend implements only
// enumeration.
package source
