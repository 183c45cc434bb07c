// Package prefs is a typed preference registry persisted to markup files.
//
// A Registry maps slash-joined keys to typed values (bool, int, uint,
// string). Every key has a current value, a default and a kind: KindRC keys
// persist to the user's rc file, KindState keys to a separate state file.
// Only values that differ from their default are written.
//
// # Tiers
//
// Store.Load merges three tiers in order. System files seed defaults and
// mark keys overridden, so later Register calls from application code do
// not reset them. The rc and state files then supply current values.
// Keys present in a file but not yet registered are kept as they were
// loaded and written back until the application registers them.
//
// # Saving
//
// Store.Save rewrites the rc file only when an rc key changed or the rc
// document was edited through Store.Markup. The state file is rebuilt on
// every call but only written when its contents changed. Writes go through
// a temporary file that is synced and renamed, so a failed save leaves the
// previous file intact.
//
// # File Format
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<moo-prefs version="1.0">
//	  <Prefs>
//	    <item name="UI/ShowHidden" type="bool">TRUE</item>
//	  </Prefs>
//	</moo-prefs>
//
// # Usage Example
//
//	store := prefs.New(prefs.DefaultOptions())
//	defer store.Close()
//
//	report, err := store.Load(sysFiles, rcPath, statePath)
//	if err != nil {
//		return err
//	}
//	for _, w := range report.Warnings {
//		log.Println(w)
//	}
//
//	store.RegisterBool("UI/ShowHidden", false, prefs.KindRC)
//	store.SetBool("UI/ShowHidden", true)
//	return store.Save(rcPath, statePath)
package prefs
