// Package project reads and writes nfbstudio project files.
//
// A project file is one JSON document holding the experiment settings and
// the signal scheme:
//
//	{
//	  "version": 1,
//	  "experiment": {"name": "Experiment", "blocks": [...], ...},
//	  "scheme": {"nodes": [...], "edges": [...]}
//	}
//
// The scheme part uses the same encoding as clipboard payloads (see
// [scheme.Document]), so a fragment copied out of one project pastes into
// any other.
//
// [Read] decodes the whole file before building anything: a malformed
// file, an unknown node kind or an ill-typed edge fails with a
// DESERIALIZATION error and no partial project is returned. Files written
// by a newer version are rejected as UNSUPPORTED.
package project
