// Package session implements the wizard session store: twelve named slots
// holding a user's in-progress meal-plan selections, persisted in a
// client-scoped kv.Storage.
//
// Key concepts:
//   - Slot: one named value; stored under "wizard_<slotName>" as JSON text
//   - Store: typed get/set access to the slots plus ClearAll
//   - Phase: Uninitialized, InProgress or Completed, derived from which slots are set
//   - Snapshot: all slots read at once, for display and export
//
// Each slot is independently optional. Values are validated at the store
// boundary; nothing checks references between slots (a selected recipe is
// not looked up in any catalogue here). A Store is built once per client
// session and passed to whatever needs it.
package session
